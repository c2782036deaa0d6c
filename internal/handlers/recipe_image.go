package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/logger"
)

// MaxImageSize bounds the size of an uploaded image.
const MaxImageSize = 10 << 20

// NewUploadRecipeImageHandler returns an HTTP handler attaching an image to a recipe.
// @Summary Upload recipe image
// @Description Stores the image from multipart field "image", replacing the previous one.
// @Tags recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe id"
// @Param image formData file true "Image file"
// @Success 200 {object} handlers.RecipeImageResponse "Stored image"
// @Failure 400 {object} handlers.ErrorResponse "Invalid image"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipes/{id}/upload-image [post]
// @Security TokenAuth
func NewUploadRecipeImageHandler(svc RecipeImageUploader, urls ImageURLer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize+1<<20)
		file, header, err := r.FormFile("image")
		if err != nil {
			logger.Log.Infow("missing image upload", "recipeID", id, "err", err)
			msg := msgNoFile
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				msg = "The submitted file is too large."
			}
			writeFieldErrors(w, map[string]string{"image": msg})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if len(data) > MaxImageSize {
			writeFieldErrors(w, map[string]string{"image": "The submitted file is too large."})
			return
		}

		recipe, err := svc.UploadImage(r.Context(), user.UserID, id, data, header.Filename)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RecipeImageResponse{
			ID:            recipe.ID,
			Image:         imageURL(recipe.Image, urls),
			ImageBlurHash: recipe.ImageBlurHash,
		})
	}
}
