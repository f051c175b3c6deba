package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mocks "github.com/Lexv0lk/vending-machine/gen/mocks/gateway"
	auth "github.com/Lexv0lk/vending-machine/internal/auth/domain"
	"github.com/Lexv0lk/vending-machine/internal/gateway/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthMiddleware(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		header string

		prepareFn func(t *testing.T, ctrl *gomock.Controller) domain.AuthService

		expectingError bool
		errorStatus    int

		expectedActor   store.Actor
		expectedSession string
	}

	buyer := store.Actor{AccountID: "acc-1", Role: store.RoleBuyer}

	testCases := []testCase{
		{
			name:   "success",
			header: "Bearer valid_token",

			prepareFn: func(t *testing.T, ctrl *gomock.Controller) domain.AuthService {
				service := mocks.NewMockAuthService(ctrl)
				service.EXPECT().
					Resolve(gomock.Any(), "valid_token").
					Return(auth.Identity{Actor: buyer, SessionID: "sess-1"}, nil)

				return service
			},

			expectingError:  false,
			expectedActor:   buyer,
			expectedSession: "sess-1",
		},
		{
			name:   "missing authorization header",
			header: "",

			expectingError: true,
			errorStatus:    http.StatusUnauthorized,
		},
		{
			name:   "invalid auth header format",
			header: "InvalidHeaderFormat",

			expectingError: true,
			errorStatus:    http.StatusUnauthorized,
		},
		{
			name:   "invalid auth header prefix",
			header: "Token invalid_token",

			expectingError: true,
			errorStatus:    http.StatusUnauthorized,
		},
		{
			name:   "revoked session",
			header: "Bearer revoked_token",

			prepareFn: func(t *testing.T, ctrl *gomock.Controller) domain.AuthService {
				service := mocks.NewMockAuthService(ctrl)
				service.EXPECT().
					Resolve(gomock.Any(), "revoked_token").
					Return(auth.Identity{}, &auth.SessionInvalidError{Msg: "session is not active"})

				return service
			},

			expectingError: true,
			errorStatus:    http.StatusUnauthorized,
		},
	}

	gin.SetMode(gin.TestMode)

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			var service domain.AuthService = mocks.NewMockAuthService(ctrl)
			if tt.prepareFn != nil {
				service = tt.prepareFn(t, ctrl)
			}

			writer := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(writer)

			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
			c.Request.Header.Set(authHeaderName, tt.header)

			middleware := NewAuthMiddleware(service, logging.NopLogger)
			middleware(c)

			if tt.expectingError {
				assert.Equal(t, tt.errorStatus, writer.Code)
				assert.True(t, c.IsAborted())
			} else {
				actor, exists := actorFrom(c)
				assert.True(t, exists)
				assert.Equal(t, tt.expectedActor, actor)
				assert.Equal(t, tt.expectedSession, sessionFrom(c))
			}
		})
	}
}
