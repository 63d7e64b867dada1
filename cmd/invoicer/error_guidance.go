package main

import (
	"context"
	"errors"
	"net"

	"invoicer/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "resource_exhausted":
			lines = append(lines, "hint: retry shortly or reduce concurrent generate/import requests.")
		case "generation_failed":
			lines = append(lines, "hint: check that the rendering service at endpoint_url is running and healthy.")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify INVOICER_API_URL points to an invoicer server.")
		}
		if apiErr.Status >= 500 && apiErr.Code != "generation_failed" {
			lines = append(lines, "hint: server returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase INVOICER_API_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure an invoicer server is running at INVOICER_API_URL.",
			"hint: start the local server manually with: invoicer srv",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
