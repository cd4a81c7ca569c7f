// Package paging reads list pagination that the API sends out of band
package paging

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
)

const Header = "X-Pagination"

// DecodeInfo never fails: absent or malformed header yields defaults
func DecodeInfo(h http.Header, log logger.Logger) models.PageInfo {
	info := models.DefaultPageInfo()

	raw := h.Get(Header)
	if raw == "" {
		return info
	}

	// Unmarshal over defaults so that missing fields keep them
	decoded := info
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		logger.OrNoOp(log).Warn("Malformed pagination header, using defaults", "header", raw, "error", err)
		return info
	}

	return decoded
}

// Decode reads a list response: items from the body, metadata from the header.
// The error is about the body only
func Decode[T any](resp *http.Response, log logger.Logger) (models.Page[T], error) {
	page := models.Page[T]{PageInfo: DecodeInfo(resp.Header, log)}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return page, fmt.Errorf("read list body: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &page.Data); err != nil {
			return page, fmt.Errorf("decode list body: %w", err)
		}
	}
	if page.Data == nil {
		page.Data = []T{}
	}

	return page, nil
}
