package handlers

import (
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
)

// NewListRecipesHandler returns an HTTP handler listing the user's recipes.
// @Summary List recipes
// @Description Returns the user's recipes, newest first. tags and ingredients filter by comma-separated ids: a recipe matches when it has any of the listed tags and any of the listed ingredients.
// @Tags recipes
// @Produce json
// @Param tags query string false "Comma separated tag ids"
// @Param ingredients query string false "Comma separated ingredient ids"
// @Success 200 {array} handlers.RecipeResponse "Recipes"
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /recipes [get]
// @Security TokenAuth
func NewListRecipesHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var filter models.RecipeFilter
		fields := map[string]string{}
		var err error

		if filter.TagIDs, err = parseIDList(r.URL.Query().Get("tags")); err != nil {
			fields["tags"] = "Enter a comma separated list of ids."
		}
		if filter.IngredientIDs, err = parseIDList(r.URL.Query().Get("ingredients")); err != nil {
			fields["ingredients"] = "Enter a comma separated list of ids."
		}
		if len(fields) > 0 {
			writeFieldErrors(w, fields)
			return
		}

		recipes, err := svc.List(r.Context(), user.UserID, filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]RecipeResponse, len(recipes))
		for i := range recipes {
			resp[i] = newRecipeResponse(&recipes[i])
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
