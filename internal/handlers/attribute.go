package handlers

//go:generate mockgen -source=attribute.go -destination=mock_attribute.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// AttributeLister lists the owner's tags or ingredients.
type AttributeLister interface {
	List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Attribute, error)
}

// AttributeGetter retrieves one tag or ingredient.
type AttributeGetter interface {
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Attribute, error)
}

// AttributeCreator creates tags or ingredients, returning existing ones by name.
type AttributeCreator interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.Attribute, bool, error)
}

// AttributeUpdater renames tags or ingredients.
type AttributeUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.Attribute, error)
}

// AttributeDeleter deletes tags or ingredients.
type AttributeDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// NewListAttributesHandler returns an HTTP handler listing the user's tags or ingredients.
// @Summary List tags or ingredients
// @Description Returns the user's tags (or ingredients) by name descending. assigned_only limits the list to those used by at least one of the user's recipes.
// @Tags tags,ingredients
// @Produce json
// @Param assigned_only query bool false "Only attributes assigned to a recipe"
// @Success 200 {array} models.Attribute "Attributes"
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /tags [get]
// @Router /ingredients [get]
// @Security TokenAuth
func NewListAttributesHandler(svc AttributeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		assignedOnly := false
		if v := strings.TrimSpace(r.URL.Query().Get("assigned_only")); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				writeFieldErrors(w, map[string]string{"assigned_only": "Must be a valid boolean."})
				return
			}
			assignedOnly = parsed
		}

		attrs, err := svc.List(r.Context(), user.UserID, assignedOnly)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, nonNil(attrs))
	}
}

// NewGetAttributeHandler returns an HTTP handler for a single tag or ingredient.
// @Summary Get tag or ingredient
// @Tags tags,ingredients
// @Produce json
// @Param id path int true "Id"
// @Success 200 {object} models.Attribute "Attribute"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /tags/{id} [get]
// @Router /ingredients/{id} [get]
// @Security TokenAuth
func NewGetAttributeHandler(svc AttributeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		attr, err := svc.Get(r.Context(), user.UserID, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, attr)
	}
}

// NewCreateAttributeHandler returns an HTTP handler creating a tag or ingredient.
// An existing name is returned as is with 200.
// @Summary Create tag or ingredient
// @Tags tags,ingredients
// @Accept json
// @Produce json
// @Param attributeRequest body handlers.AttributeRequest true "Name"
// @Success 201 {object} models.Attribute "Created"
// @Success 200 {object} models.Attribute "Already existed"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /tags [post]
// @Router /ingredients [post]
// @Security TokenAuth
func NewCreateAttributeHandler(svc AttributeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req AttributeRequest
		if !decodeJSON(w, r, &req) || !validateName(w, &req) {
			return
		}

		attr, created, err := svc.Create(r.Context(), user.UserID, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, attr)
	}
}

// AttributeUpdateRequest renames a tag or ingredient. The owner is not writable.
type AttributeUpdateRequest struct {
	AttributeRequest
	User json.RawMessage `json:"user,omitempty" swaggerignore:"true"`
}

// NewUpdateAttributeHandler returns an HTTP handler renaming a tag or ingredient.
// PUT and PATCH behave the same since name is the only writable field.
// @Summary Rename tag or ingredient
// @Tags tags,ingredients
// @Accept json
// @Produce json
// @Param id path int true "Id"
// @Param attributeRequest body handlers.AttributeUpdateRequest true "New name"
// @Success 200 {object} models.Attribute "Updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input / duplicate name"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /tags/{id} [patch]
// @Router /ingredients/{id} [patch]
// @Security TokenAuth
func NewUpdateAttributeHandler(svc AttributeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req AttributeUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.User) > 0 {
			writeFieldErrors(w, map[string]string{"user": "The owner cannot be changed."})
			return
		}
		if !validateName(w, &req.AttributeRequest) {
			return
		}

		attr, err := svc.Update(r.Context(), user.UserID, id, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, attr)
	}
}

// NewDeleteAttributeHandler returns an HTTP handler deleting a tag or ingredient.
// Recipes using it lose the link and are otherwise unchanged.
// @Summary Delete tag or ingredient
// @Tags tags,ingredients
// @Param id path int true "Id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Not found"
// @Router /tags/{id} [delete]
// @Router /ingredients/{id} [delete]
// @Security TokenAuth
func NewDeleteAttributeHandler(svc AttributeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), user.UserID, id); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func validateName(w http.ResponseWriter, req *AttributeRequest) bool {
	req.Name = strings.TrimSpace(req.Name)
	return validateRequest(w, req)
}
