// backend/src/handlers/upload_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/dividendvisor/backend/src/config"
	"github.com/username/dividendvisor/backend/src/logger"
	"github.com/username/dividendvisor/backend/src/parsers/etoro"
	"github.com/username/dividendvisor/backend/src/security/validation"
	"github.com/username/dividendvisor/backend/src/services"
	"github.com/username/dividendvisor/backend/src/utils"
)

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: service,
	}
}

func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := validation.ValidateStringMaxLength(fileHeader.Filename, validation.MaxFilenameLength, "filename"); err != nil {
		ctxLogger.Warn("Upload rejected by filename length check", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateFileExtension(fileHeader.Filename); err != nil {
		ctxLogger.Warn("Upload rejected by extension check", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateFileSize(fileHeader.Size, config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Upload rejected by size check", "filename", fileHeader.Filename, "size", fileHeader.Size, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("File content validated by magic bytes", "filename", fileHeader.Filename,
		"clientType", clientContentType, "detectedType", detectedContentType)

	result, err := h.uploadService.ProcessUpload(file, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "error", err)
	}
}

// writeServiceError maps pipeline failure modes to HTTP statuses with their
// human-readable messages.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctxLogger := logger.FromContext(r.Context())

	switch {
	case errors.Is(err, services.ErrUploadNotFound):
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrWorkbookInvalid),
		errors.Is(err, etoro.ErrNoSheets),
		errors.Is(err, etoro.ErrSheetUnreadable),
		errors.Is(err, etoro.ErrSheetEmpty),
		errors.Is(err, etoro.ErrHeaderNotFound),
		errors.Is(err, services.ErrNoValidRecords):
		ctxLogger.Warn("Upload processing failed", "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		ctxLogger.Error("Unexpected error processing upload", "error", err)
		utils.SendJSONError(w, "Internal error processing the file", http.StatusInternalServerError)
	}
}
