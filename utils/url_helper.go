package utils

import (
	"net/http"
	"time"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ResolveShortenedURL follows redirects to find the final URL
func ResolveShortenedURL(url string) (string, error) {
	client := &http.Client{
		Timeout: 15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Keep following redirects
			return nil
		},
	}

	req, err := http.NewRequest("HEAD", url, nil)
	if err != nil {
		return url, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		// Some servers block HEAD; retry with GET.
		req, err = http.NewRequest("GET", url, nil)
		if err != nil {
			return url, err
		}
		req.Header.Set("User-Agent", browserUserAgent)

		resp, err = client.Do(req)
		if err != nil {
			return url, err
		}
	}
	defer resp.Body.Close()

	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String(), nil
	}
	return url, nil
}
