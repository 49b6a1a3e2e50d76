package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/price-watcher/config"
	"github.com/raushankrgupta/price-watcher/i18n"
	"github.com/raushankrgupta/price-watcher/store"
	"github.com/raushankrgupta/price-watcher/tracker"
	"github.com/raushankrgupta/price-watcher/utils"
)

// API bundles the handler dependencies.
type API struct {
	Driver *tracker.Driver
	Store  store.ProductStore
}

func NewAPI(driver *tracker.Driver, st store.ProductStore) *API {
	return &API{Driver: driver, Store: st}
}

// ProductsHandler serves the tracked-products collection:
// GET lists, POST adds, DELETE removes.
func (a *API) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Products API]")

	switch r.Method {
	case http.MethodGet:
		a.listProducts(w, r, &logMessageBuilder)
	case http.MethodPost:
		a.addProduct(w, r, &logMessageBuilder)
	case http.MethodDelete:
		a.removeProduct(w, r, &logMessageBuilder)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request, lb *strings.Builder) {
	products, err := a.Store.List(r.Context())
	if err != nil {
		utils.AddToLogMessage(lb, fmt.Sprintf("List failed: %v", err))
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}

	// Archived images are served through short-lived presigned URLs; the
	// stored source URL is only the fallback.
	if config.AWSBucketName != "" {
		for i := range products {
			if products[i].ImageKey == "" {
				continue
			}
			if url, err := utils.GetPresignedURL(r.Context(), products[i].ImageKey); err == nil {
				products[i].Image = url
			}
		}
	}

	utils.AddToLogMessage(lb, fmt.Sprintf("Listed %d product(s)", len(products)))
	writeJSON(w, products)
}

func (a *API) addProduct(w http.ResponseWriter, r *http.Request, lb *strings.Builder) {
	var req struct {
		URL   string  `json:"url"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	product, err := a.Driver.AddProduct(r.Context(), req.URL, req.Name, req.Price, req.Image)
	if err != nil {
		utils.AddToLogMessage(lb, fmt.Sprintf("Add failed: %v", err))
		http.Error(w, fmt.Sprintf("Failed to add product: %v", err), http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(lb, fmt.Sprintf("Added product %s", product.ID))
	writeJSON(w, product)
}

func (a *API) removeProduct(w http.ResponseWriter, r *http.Request, lb *strings.Builder) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Please provide an 'id' query parameter", http.StatusBadRequest)
		return
	}

	if err := a.Driver.RemoveProduct(r.Context(), id); err != nil {
		utils.AddToLogMessage(lb, fmt.Sprintf("Remove failed: %v", err))
		http.Error(w, "Failed to remove product", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(lb, fmt.Sprintf("Removed product %s", id))
	writeJSON(w, map[string]bool{"success": true})
}

// HistoryHandler returns one product's record with its full price history,
// the popup chart's data source.
func (a *API) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Please provide an 'id' query parameter", http.StatusBadRequest)
		return
	}

	product, err := a.Store.Get(r.Context(), id)
	if err == store.ErrNotFound {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, product)
}

// CheckHandler runs one out-of-band recheck cycle for a single product.
func (a *API) CheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Please provide an 'id' query parameter", http.StatusBadRequest)
		return
	}

	if err := a.Driver.CheckProduct(r.Context(), id); err != nil {
		http.Error(w, fmt.Sprintf("Check failed: %v", err), http.StatusInternalServerError)
		return
	}

	product, err := a.Store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, product)
}

// CheckAllHandler kicks off a full recheck batch in the background.
func (a *API) CheckAllHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The batch outlives the request.
	go a.Driver.CheckAll(context.Background())

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]bool{"started": true})
}

// LanguageHandler reads or sets the notification language preference.
func (a *API) LanguageHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		lang, err := a.Store.Language(r.Context())
		if err == store.ErrNotFound {
			lang = config.DefaultLanguage
		} else if err != nil {
			http.Error(w, "Failed to load language", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"language": lang})
	case http.MethodPost:
		var req struct {
			Language string `json:"language"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}
		if !i18n.Supported(req.Language) {
			http.Error(w, fmt.Sprintf("Unsupported language %q", req.Language), http.StatusBadRequest)
			return
		}
		if err := a.Store.SetLanguage(r.Context(), req.Language); err != nil {
			http.Error(w, "Failed to save language", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"language": req.Language})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}
