package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/alexvargashn/doc23/internal/extract"
	"github.com/alexvargashn/doc23/internal/schema"
	"github.com/alexvargashn/doc23/internal/tree"
)

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSize+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	sch, err := s.schemaFromRequest(r)
	if err != nil {
		var cfgErr *schema.ConfigError
		if errors.As(err, &cfgErr) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.docService.StructureReader(file, filename, sch)
	if err != nil {
		status := http.StatusInternalServerError
		var structErr *tree.StructureError
		var typeErr *extract.FileTypeError
		switch {
		case errors.As(err, &structErr):
			status = http.StatusUnprocessableEntity
		case errors.As(err, &typeErr):
			status = http.StatusUnsupportedMediaType
		}
		jsonError(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxFileSize+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	text, err := s.docService.Extract(file, filename)
	if err != nil {
		status := http.StatusInternalServerError
		var typeErr *extract.FileTypeError
		if errors.As(err, &typeErr) {
			status = http.StatusUnsupportedMediaType
		}
		jsonError(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"length":   len(text),
		"text":     text,
	})
}

func (s *Server) handleValidateSchema(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = sniffFormat(data)
	}

	sch, err := schema.Parse(data, format)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		json.NewEncoder(w).Encode(map[string]any{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	levels := make([]string, 0, sch.Len())
	for i := 0; i < sch.Len(); i++ {
		levels = append(levels, sch.At(i).Name)
	}
	json.NewEncoder(w).Encode(map[string]any{
		"valid":  true,
		"root":   sch.RootName(),
		"levels": levels,
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"extensions": extract.SupportedExtensionList(),
		"scan_modes": []string{"text", "ocr", "auto"},
	})
}

// schemaFromRequest resolves the schema for a structure request: an uploaded
// "schema" file part wins, then an inline "schema_json" form value, then the
// server's configured default schema.
func (s *Server) schemaFromRequest(r *http.Request) (*schema.Schema, error) {
	if part, header, err := r.FormFile("schema"); err == nil {
		defer part.Close()
		data, err := io.ReadAll(io.LimitReader(part, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema upload: %w", err)
		}
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
		if format == "" {
			format = sniffFormat(data)
		}
		return schema.Parse(data, format)
	}

	if raw := r.FormValue("schema_json"); raw != "" {
		return schema.Parse([]byte(raw), "json")
	}

	if s.cfg.SchemaPath != "" {
		return schema.LoadFile(s.cfg.SchemaPath)
	}
	return nil, fmt.Errorf("no schema provided: upload a schema file, pass schema_json, or configure a default schema")
}

func sniffFormat(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return "json"
	}
	return "yaml"
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
