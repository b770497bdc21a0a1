package httpapp

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"listing_editor/internal/clients/estateapi"
	"listing_editor/internal/domain/models"
	"listing_editor/internal/lib/jwt"
	"listing_editor/internal/lib/logger/sl"
	httprouters "listing_editor/internal/transport/http"
	"listing_editor/internal/transport/http/dto/response"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "listing_editor"
	traceHeader = "X-Trace-ID"

	sessTokenKey = "token_fp"
	sessAgentKey = "agent"
)

// agentOnlyMiddleware пускает только агентов. Личность берётся из cookie
// сессии, если токен не менялся, иначе у identity API.
func (s *Server) agentOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		const op = "http.Server.agentOnlyMiddleware"

		log := s.log.With(slog.String("op", op))

		token, err := jwt.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}
		if err := jwt.CheckExpiry(token, time.Now()); err != nil {
			log.Debug("token rejected", sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}

		traceID := c.Request().Header.Get(traceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Response().Header().Set(traceHeader, traceID)

		ctx := estateapi.WithTraceID(estateapi.WithToken(c.Request().Context(), token), traceID)
		c.SetRequest(c.Request().WithContext(ctx))

		fp := fingerprint(token)
		agent, ok := s.cachedAgent(c, fp)
		if !ok {
			agent, err = s.identity.CurrentUser(ctx, token)
			if err != nil {
				if errors.Is(err, estateapi.ErrUnauthorized) {
					return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
				}
				log.Error("failed to resolve current user", sl.Err(err))
				return c.JSON(http.StatusBadGateway, response.ErrorResponseWithDetails(response.CodeUpstreamFailed, "Identity service is unavailable"))
			}
			s.rememberAgent(c, fp, agent)
		}

		if !agent.HasRole(models.RoleAgent) {
			log.Warn("non-agent rejected", slog.String("user_id", agent.ID))
			return c.JSON(http.StatusForbidden, response.ErrAgentRequired)
		}

		httprouters.SetAgent(c, agent)
		return next(c)
	}
}

func (s *Server) cachedAgent(c echo.Context, fp string) (models.Agent, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return models.Agent{}, false
	}

	storedFP, ok := sess.Values[sessTokenKey].(string)
	if !ok || storedFP != fp {
		return models.Agent{}, false
	}
	raw, ok := sess.Values[sessAgentKey].(string)
	if !ok {
		return models.Agent{}, false
	}

	var agent models.Agent
	if err := json.Unmarshal([]byte(raw), &agent); err != nil {
		return models.Agent{}, false
	}
	return agent, true
}

func (s *Server) rememberAgent(c echo.Context, fp string, agent models.Agent) {
	// при битой cookie store всё равно отдаёт новую сессию
	sess, _ := session.Get(sessionName, c)
	if sess == nil {
		return
	}

	raw, err := json.Marshal(agent)
	if err != nil {
		return
	}
	sess.Values[sessTokenKey] = fp
	sess.Values[sessAgentKey] = string(raw)

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		s.log.Warn("failed to save session", sl.Err(err))
	}
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
