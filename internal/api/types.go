package api

import (
	"invoicer/internal/models"
	"invoicer/internal/render"
)

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// InfoResponse describes the running server and its data layout.
type InfoResponse struct {
	DBPath       string `json:"db_path"`
	AssetsDir    string `json:"assets_dir"`
	ArtifactsDir string `json:"artifacts_dir"`
	EndpointURL  string `json:"endpoint_url"`
	PDFBackend   string `json:"pdf_backend"`
	RecordCount  int    `json:"record_count"`
}

// GenerateResponse reports one completed document generation. The record is
// returned with its artifact reference already written back.
type GenerateResponse struct {
	Artifact render.ArtifactRef   `json:"artifact"`
	Record   models.InvoiceRecord `json:"record"`
}

// SweepResponse reports one unreferenced-asset sweep.
type SweepResponse struct {
	Candidates int      `json:"candidates"`
	Deleted    int      `json:"deleted"`
	Failed     int      `json:"failed"`
	Keys       []string `json:"keys,omitempty"`
	DryRun     bool     `json:"dry_run"`
}
