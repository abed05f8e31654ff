package server

import "net/http"

// pathsInfo describes the CRUD paths the API exposes.
type pathsInfo struct {
	Create   string `json:"create"`
	Retrieve string `json:"retrieve"`
	Update   string `json:"update"`
	Delete   string `json:"delete"`
}

type contactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type infoResponse struct {
	OpenAPIVersion string      `json:"openapi_version"`
	Title          string      `json:"title"`
	Summary        string      `json:"summary"`
	Description    string      `json:"description"`
	TermsOfService string      `json:"terms_of_service"`
	Contact        contactInfo `json:"contact"`
	Version        string      `json:"version"`
	Paths          pathsInfo   `json:"paths"`
}

type healthCheckResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandleInfo serves the static API description.
func HandleInfo(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, infoResponse{
		OpenAPIVersion: "3.0.0",
		Title:          "Rivet Head API",
		Summary:        "An API for tracking music listening habits and displaying random bits of heavy music trivia",
		Description:    "This is the server API for the Rivet Head app",
		TermsOfService: "Coming soon...",
		Contact: contactInfo{
			Name:  "Jeff Mitchell",
			Email: "sentinel909@jeff-mitchell.dev",
		},
		Version: "1.0.0",
		Paths: pathsInfo{
			Create:   "/api/diary/new // adds a new entry, timestamp is automatically added (UTC time)",
			Retrieve: "/api/diary // retrieves and displays all entries in json format",
			Update:   "/api/diary/update/{album|thoughts}/{id} // accepts an update to a single field, automatically adds timestamp (UTC time) of update",
			Delete:   "/api/diary/delete/{id} // deletes any entry by unique id",
		},
	})
}

// HandleHealthCheck reports liveness. It holds no state.
func HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, healthCheckResponse{Code: http.StatusOK, Message: "Ok"})
}

// HandleNotFound is the default route. An unmatched path is a
// distinguishable outcome with a structured body, not a bare status code.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusNotFound, Message{Message: "Resource not found"})
}
