package handlers

import "net/http"

// NewUpdateRecipeHandler returns an HTTP handler updating one of the user's recipes.
// With full set (PUT) title, time_minutes and price are required; otherwise (PATCH)
// only the given fields change.
// @Summary Update recipe
// @Description PUT replaces the recipe, PATCH changes only the given fields. Given tags or ingredients replace the current set; an empty list clears it.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe id"
// @Param recipeRequest body handlers.RecipeRequest true "Recipe fields"
// @Success 200 {object} handlers.RecipeDetailResponse "Updated recipe"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /recipes/{id} [put]
// @Router /recipes/{id} [patch]
// @Security TokenAuth
func NewUpdateRecipeHandler(svc RecipeUpdater, urls ImageURLer, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
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
		if len(req.User) > 0 {
			writeFieldErrors(w, map[string]string{"user": "The owner of a recipe cannot be changed."})
			return
		}

		patch, fields := req.toPatch(full)
		if fields != nil {
			writeFieldErrors(w, fields)
			return
		}

		recipe, err := svc.Update(r.Context(), user.UserID, id, patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newRecipeDetailResponse(recipe, urls))
	}
}
