package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora/pkg/utils"
)

const imageField = "image"

// readImageField loads the multipart "image" file. It reads at most one byte
// past maxBytes so the service can reject oversized uploads without the whole
// body being buffered.
func readImageField(c *gin.Context, maxBytes int64) ([]byte, bool) {
	header, err := c.FormFile(imageField)
	if err != nil {
		utils.RespondFieldErrors(c, http.StatusBadRequest, "Validation failed",
			map[string][]string{imageField: {"No file was submitted."}})
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read the uploaded file")
		return nil, false
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read the uploaded file")
		return nil, false
	}
	return data, true
}
