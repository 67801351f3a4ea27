package ws

import (
	"log"
	"net/http"
	"strings"

	"empedi/internal/domain/job"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler builds the /ws/jobs endpoint. An empty or "*" origin list
// accepts any origin.
func NewHandler(hub *Hub, allowOrigins []string, logger *log.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowOrigins),
		},
	}
}

func originChecker(allow []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allow))
	for _, o := range allow {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}

// HandleJobsWS upgrades the request. Optional query params: kind=job|internship
// and skill_ids=<uuid,uuid>.
func (h *Handler) HandleJobsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	filter, err := parseFilter(c.Query("kind"), c.Query("skill_ids"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade failed err=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, filter)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func parseFilter(kind, skills string) (Filter, error) {
	var f Filter
	if kind = strings.TrimSpace(kind); kind != "" {
		f.Kind = job.Kind(kind)
		if !f.Kind.Valid() {
			return Filter{}, errInvalidKind
		}
	}
	for _, raw := range strings.Split(skills, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return Filter{}, errInvalidSkillID
		}
		f.SkillIDs = append(f.SkillIDs, id)
	}
	return f, nil
}
