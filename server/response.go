package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// WriteResponse writes data as JSON with the given status. Clients that look
// like cURL get compact output and everyone else gets it indented. A nil data
// writes the status text.
func WriteResponse(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, status int, data interface{}) {
	if data == nil {
		data = http.StatusText(status)
	}

	var encodedData []byte
	var err error

	if isCurl(r.Header.Get("User-Agent")) {
		encodedData, err = json.Marshal(&data)
	} else {
		encodedData, err = json.MarshalIndent(&data, "", "  ")
	}

	if err != nil {
		logger.Errorf("Error serializing response: %v", err)
		WriteResponse(w, r, logger, http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(encodedData)
	if err != nil {
		logger.Errorf("Error writing to client: %v", err)
	}
}

func isCurl(userAgent string) bool {
	return strings.HasPrefix(userAgent, "curl/")
}
