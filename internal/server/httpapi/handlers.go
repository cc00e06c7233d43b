package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophmessenger/internal/api"
	"github.com/dmitrijs2005/gophmessenger/internal/common"
	"github.com/dmitrijs2005/gophmessenger/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, token, err := s.users.RegisterAndLogin(r.Context(), services.RegisterParams{
		UserName:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, api.AuthResponse{Token: token, User: user})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeErrorMessage(w, http.StatusUnauthorized, common.InvalidCredentialsMessage)
			return
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.AuthResponse{Token: token})
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ListUsersResponse{Users: users})
}

func (s *HTTPServer) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.GetUserResponse{User: user})
}

// messagesTo lists messages addressed to {username}.
func (s *HTTPServer) messagesTo(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messages.ListReceivedBy(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ListReceivedMessagesResponse{Messages: msgs})
}

// messagesFrom lists messages sent by {username}.
func (s *HTTPServer) messagesFrom(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.messages.ListSentBy(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ListSentMessagesResponse{Messages: msgs})
}

func (s *HTTPServer) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req api.SendMessageRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	from, _ := UserNameFromContext(r.Context())
	msg, err := s.messages.Send(r.Context(), from, req.ToUsername, req.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.SendMessageResponse{Message: msg})
}

func (s *HTTPServer) getMessage(w http.ResponseWriter, r *http.Request) {
	requester, _ := UserNameFromContext(r.Context())
	msg, err := s.messages.Get(r.Context(), chi.URLParam(r, "id"), requester)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.GetMessageResponse{Message: msg})
}
