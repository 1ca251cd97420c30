package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"hvac-backend/internal/services"
	"hvac-backend/pkg/utils"
)

const multipartOverhead = 1 << 20

type ImageHandler struct {
	Service *services.ImageService
}

func NewImageHandler(s *services.ImageService) *ImageHandler {
	return &ImageHandler{Service: s}
}

// Upload accepts a multipart form with a "file" part and an optional "folder".
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.Service.Opts.MaxBytes
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.Error(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Arquivo muito grande. Tamanho máximo: %dMB", maxBytes>>20))
			return
		}
		utils.Error(w, http.StatusBadRequest, "Formulário multipart inválido")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Nenhum arquivo enviado")
		return
	}
	defer file.Close()

	// One byte past the limit is enough for Validate to report TooLarge.
	var reader io.Reader = file
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Erro ao ler arquivo")
		return
	}

	img, err := h.Service.Upload(r.Context(), data, r.FormValue("folder"))
	if err != nil {
		writeError(w, r, err, "Erro ao enviar imagem")
		return
	}

	utils.Created(w, "Imagem enviada com sucesso", "image", img)
}

// Delete removes an object given by ?path=.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.URL.Query().Get("path")); err != nil {
		writeError(w, r, err, "Erro ao remover imagem")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Imagem removida com sucesso"})
}
