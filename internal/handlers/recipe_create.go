package handlers

import "net/http"

// NewCreateRecipeHandler returns an HTTP handler creating a recipe for the user.
// @Summary Create recipe
// @Description Creates a recipe. Tags and ingredients are given by name and created when the user does not have them yet.
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipeRequest body handlers.RecipeRequest true "Recipe"
// @Success 201 {object} handlers.RecipeDetailResponse "Created recipe"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /recipes [post]
// @Security TokenAuth
func NewCreateRecipeHandler(svc RecipeCreator, urls ImageURLer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req RecipeRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.trimAttributeNames()
		if !validateRequest(w, req) {
			return
		}

		in, fields := req.toInput()
		if fields != nil {
			writeFieldErrors(w, fields)
			return
		}

		recipe, err := svc.Create(r.Context(), user.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newRecipeDetailResponse(recipe, urls))
	}
}
