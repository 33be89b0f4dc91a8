// fetcher/download.go
package fetcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client downloads source archives from government URLs.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// DownloadArchive fetches the archive at url into memory. Monthly datasets are
// at most a few hundred kilobytes, so buffering the whole body is fine.
func (c *Client) DownloadArchive(url string) ([]byte, error) {
	log.Printf("Fetcher: downloading archive from %s\n", url)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: received status code %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	log.Printf("Fetcher: downloaded %d bytes from %s\n", len(data), url)
	return data, nil
}

// Checksum returns the hex SHA-256 fingerprint of the archive bytes. Used to
// detect whether a source file changed since the last ingestion.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
