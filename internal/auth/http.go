// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/middleware"
	requestutil "github.com/taibuivan/ghibli/internal/platform/request"
	"github.com/taibuivan/ghibli/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the REST surface of the session protocol.
//
// # Scope
//
// Validation runs here, before the [Service]. Cookie directives returned by
// the service are written here.
type Handler struct {
	authService *Service
	cookies     CookieWriter
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, cookies CookieWriter) *Handler {
	return &Handler{authService: service, cookies: cookies}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup  : Creates a new account.
//   - POST /login   : Opens a session and sets the refresh cookie.
//   - POST /refresh : Rotates the refresh cookie and returns a new access token.
//   - POST /logout  : Ends the session; never fails.
//   - GET  /me      : Returns the authenticated account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signUp)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type signUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// # Response Payloads

type loginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

/*
SignUp handles the creation of a new user account.

POST /api/v1/auth/signup

Request:
  - Body: signUpRequest (Email, Username, Password)

Response:
  - 201: User: Created user profile
  - 400: VALIDATION_ERROR: Bad input
  - 409: CONFLICT: Email already registered (detail on "email")
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var body signUpRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := SignUpInput(body)
	if err := SignUpSchema.Validate(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Identifier, Password)

Response:
  - 200: loginResponse: Access token and user; refresh token in the cookie only
  - 401: UNAUTHORIZED: Exactly one detail on "identifier" or "password"
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := LoginInput(body)
	if err := LoginSchema.Validate(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if len(result.Errors) > 0 {
		respond.Error(writer, request, apperr.Unauthorized("Invalid login credentials").WithDetails(result.Errors...))
		return
	}

	handler.cookies.Write(writer, result.RefreshCookie)
	respond.OK(writer, loginResponse{User: result.User, AccessToken: result.AccessToken})
}

/*
Refresh issues a new access token from the refresh token cookie.

POST /api/v1/auth/refresh

Response:
  - 200: refreshResponse: New access token; the cookie is rotated
  - 401: UNAUTHORIZED: Any refresh failure, without saying which check failed
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.authService.RefreshAccessToken(request.Context(), requestutil.RefreshToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result == nil {
		respond.Error(writer, request, apperr.Unauthorized("Invalid or expired refresh token"))
		return
	}

	handler.cookies.Write(writer, result.RefreshCookie)
	respond.OK(writer, refreshResponse{AccessToken: result.AccessToken})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Response:
  - 200: true, always
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie := handler.authService.Logout(request.Context(), requestutil.Claims(request))
	handler.cookies.Write(writer, cookie)
	respond.OK(writer, true)
}

/*
Me returns the account of the authenticated caller.

GET /api/v1/auth/me

Response:
  - 200: User
  - 401: UNAUTHORIZED: Missing or invalid access token
  - 404: NOT_FOUND: The account was deleted
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if user == nil {
		respond.Error(writer, request, apperr.NotFound("User"))
		return
	}

	respond.OK(writer, user)
}
