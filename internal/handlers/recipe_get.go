package handlers

import "net/http"

// NewGetRecipeHandler returns an HTTP handler for a single recipe.
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} handlers.RecipeDetailResponse "Recipe"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipes/{id} [get]
// @Security TokenAuth
func NewGetRecipeHandler(svc RecipeGetter, urls ImageURLer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		recipe, err := svc.Get(r.Context(), user.UserID, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newRecipeDetailResponse(recipe, urls))
	}
}
