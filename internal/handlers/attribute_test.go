package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAttributesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		target       string
		assignedOnly bool
		expectCall   bool
		expectedCode int
	}{
		{name: "all", target: "/tags", expectCall: true, expectedCode: http.StatusOK},
		{name: "assigned only numeric", target: "/tags?assigned_only=1", assignedOnly: true, expectCall: true, expectedCode: http.StatusOK},
		{name: "assigned only false", target: "/tags?assigned_only=false", expectCall: true, expectedCode: http.StatusOK},
		{name: "malformed", target: "/tags?assigned_only=maybe", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockAttributeLister(ctrl)
			if tt.expectCall {
				mockSvc.EXPECT().List(gomock.Any(), testUser.UserID, tt.assignedOnly).Return(nil, nil)
			}

			rr := serve(NewListAttributesHandler(mockSvc), http.MethodGet, "/tags", tt.target, "", testUser)
			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				assert.JSONEq(t, `[]`, rr.Body.String())
			} else {
				assert.Contains(t, decodeError(t, rr).Fields, "assigned_only")
			}
		})
	}
}

func TestGetAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeGetter(ctrl)
	mockSvc.EXPECT().Get(gomock.Any(), testUser.UserID, int64(1)).Return(&models.Attribute{ID: 1, UserID: testUser.UserID, Name: "Vegan"}, nil)
	mockSvc.EXPECT().Get(gomock.Any(), testUser.UserID, int64(2)).Return(nil, services.ErrNotFound)

	rr := serve(NewGetAttributeHandler(mockSvc), http.MethodGet, "/tags/{id}", "/tags/1", "", testUser)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"name":"Vegan"}`, rr.Body.String())

	rr = serve(NewGetAttributeHandler(mockSvc), http.MethodGet, "/tags/{id}", "/tags/2", "", testUser)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		body         string
		created      bool
		expectCall   bool
		expectedCode int
	}{
		{name: "new", body: `{"name":"Vegan"}`, created: true, expectCall: true, expectedCode: http.StatusCreated},
		{name: "existing", body: `{"name":" Vegan "}`, created: false, expectCall: true, expectedCode: http.StatusOK},
		{name: "blank", body: `{"name":"  "}`, expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockAttributeCreator(ctrl)
			if tt.expectCall {
				mockSvc.EXPECT().Create(gomock.Any(), testUser.UserID, "Vegan").
					Return(&models.Attribute{ID: 3, Name: "Vegan"}, tt.created, nil)
			}

			rr := serve(NewCreateAttributeHandler(mockSvc), http.MethodPost, "/tags", "/tags", tt.body, testUser)
			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectCall {
				var resp models.Attribute
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, int64(3), resp.ID)
			} else {
				assert.Contains(t, decodeError(t, rr).Fields, "name")
			}
		})
	}
}

func TestUpdateAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeUpdater(ctrl)
	handler := NewUpdateAttributeHandler(mockSvc)

	t.Run("renamed", func(t *testing.T) {
		mockSvc.EXPECT().Update(gomock.Any(), testUser.UserID, int64(1), "Plant").Return(&models.Attribute{ID: 1, Name: "Plant"}, nil)

		rr := serve(handler, http.MethodPatch, "/tags/{id}", "/tags/1", `{"name":"Plant"}`, testUser)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"id":1,"name":"Plant"}`, rr.Body.String())
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockSvc.EXPECT().Update(gomock.Any(), testUser.UserID, int64(1), "Dessert").
			Return(nil, validation.NewError("name", "Tag with this name already exists."))

		rr := serve(handler, http.MethodPut, "/tags/{id}", "/tags/1", `{"name":"Dessert"}`, testUser)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Fields, "name")
	})

	t.Run("foreign", func(t *testing.T) {
		mockSvc.EXPECT().Update(gomock.Any(), testUser.UserID, int64(5), "Plant").Return(nil, services.ErrNotFound)

		rr := serve(handler, http.MethodPatch, "/tags/{id}", "/tags/5", `{"name":"Plant"}`, testUser)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("owner change rejected", func(t *testing.T) {
		body := `{"name":"Vegan","user":"00000000-0000-0000-0000-000000000001"}`

		for _, method := range []string{http.MethodPatch, http.MethodPut} {
			rr := serve(handler, method, "/tags/{id}", "/tags/7", body, testUser)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decodeError(t, rr).Fields, "user")
		}
	})
}

func TestDeleteAttributeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockAttributeDeleter(ctrl)
	mockSvc.EXPECT().Delete(gomock.Any(), testUser.UserID, int64(1)).Return(nil)
	mockSvc.EXPECT().Delete(gomock.Any(), testUser.UserID, int64(2)).Return(services.ErrNotFound)

	rr := serve(NewDeleteAttributeHandler(mockSvc), http.MethodDelete, "/tags/{id}", "/tags/1", "", testUser)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(NewDeleteAttributeHandler(mockSvc), http.MethodDelete, "/tags/{id}", "/tags/2", "", testUser)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
