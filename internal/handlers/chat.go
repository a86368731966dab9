package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fleetconsole/internal/chat"
	"fleetconsole/internal/views"
	"fleetconsole/pkg/utils"
)

// OpenChat opens (or resumes) the check-in session with a driver and returns
// its transcript. Opening a chat with a different driver ends the previous
// session.
func OpenChat(v *views.Views, sessions *chat.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := chi.URLParam(r, "driverID")

		driverName, zone := "", ""
		if driver, ok := v.DriverByID(r.Context(), driverID); ok {
			driverName, zone = driver.Name, driver.CurrentZone
		}

		session := sessions.Open(driverID, driverName, zone)
		utils.Success(w, session)
	}
}

// PostChatMessage appends a manager message to the open session.
func PostChatMessage(sessions *chat.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		driverID := chi.URLParam(r, "driverID")

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
			utils.Error(w, http.StatusBadRequest, "message text required")
			return
		}

		message, ok := sessions.Append(driverID, "Dispatch", body.Text)
		if !ok {
			utils.Error(w, http.StatusConflict, "no open session for driver")
			return
		}
		utils.JSON(w, http.StatusCreated, message)
	}
}
