package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"net/http"

	log "github.com/sirupsen/logrus"

	mafe "github.com/maproom/mafe"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	mux := http.NewServeMux()

	// POST {"spec": "...", "width": w, "height": h} compiles the map
	// specification. The default response is the framed op stream as
	// JSON; with Accept: image/png it is a rendered raster.
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Spec   string `json:"spec"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Spec == "" {
			writeError(w, http.StatusBadRequest, "missing field: spec")
			return
		}
		if body.Width <= 0 {
			body.Width = 800
		}
		if body.Height <= 0 {
			body.Height = 600
		}

		spec, err := mafe.ParseString(body.Spec)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		ops, err := mafe.Run(spec)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		extent, _ := spec.Map.Extent()
		framed := mafe.Frame(*extent, float64(body.Width), float64(body.Height), ops)

		if r.Header.Get("Accept") == "image/png" {
			img := mafe.RenderImage(framed, body.Width, body.Height)
			w.Header().Set("Content-Type", "image/png")
			w.WriteHeader(http.StatusOK)
			if err := png.Encode(w, img); err != nil {
				log.WithError(err).Error("png encode")
			}
			return
		}

		b, err := mafe.MarshalOpsJSON(framed)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.WithField("addr", addr).Info("mafe server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
