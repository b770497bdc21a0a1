package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"listing_editor/internal/lib/logger/sl"
	"listing_editor/internal/transport/http/dto"
	"listing_editor/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const (
	imagesField         = "images"
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// OpenSession godoc
// @Summary Открыть сессию редактора
// @Description Без property_id открывает создание объявления, с property_id загружает объект и открывает редактирование.
// @Tags editor
// @Accept json
// @Produce json
// @Param request body dto.OpenSessionRequest false "Объект для редактирования"
// @Success 201 {object} response.Response{data=editor.SessionView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Пользователь не агент"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Failure 502 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions [post]
func (r *Routers) OpenSession(c echo.Context) error {
	const op = "http.routers.OpenSession"

	log := r.log.With(
		slog.String("op", op),
	)

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.OpenSessionRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			log.Warn("failed to bind request", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
		}
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error()))
	}

	view, err := r.EditorService.Open(c.Request().Context(), agent, req.PropertyID)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(view))
}

// GetSession godoc
// @Summary Состояние сессии
// @Tags editor
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Success 200 {object} response.Response{data=editor.SessionView}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id} [get]
func (r *Routers) GetSession(c echo.Context) error {
	const op = "http.routers.GetSession"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	view, err := r.EditorService.Get(c.Request().Context(), agent.ID, c.Param("id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// CloseSession godoc
// @Summary Закрыть сессию
// @Description Отбрасывает черновик и загруженные файлы.
// @Tags editor
// @Param id path string true "ID сессии" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id} [delete]
func (r *Routers) CloseSession(c echo.Context) error {
	const op = "http.routers.CloseSession"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	if err := r.EditorService.Close(c.Request().Context(), agent.ID, c.Param("id")); err != nil {
		return r.writeError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateDraft godoc
// @Summary Изменить поля черновика
// @Description Числовые поля принимаются строкой или числом. Пустая строка очищает поле.
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Param request body dto.DraftPatchRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=editor.SessionView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/draft [patch]
func (r *Routers) UpdateDraft(c echo.Context) error {
	const op = "http.routers.UpdateDraft"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	var req dto.DraftPatchRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error()))
	}

	view, err := r.EditorService.UpdateDraft(c.Request().Context(), agent.ID, c.Param("id"), req.ToPatch())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// CheckAmenity godoc
// @Summary Отметить удобство
// @Tags editor
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Param improvement_id path int true "ID удобства"
// @Success 200 {object} response.Response{data=editor.SessionView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/amenities/{improvement_id} [put]
func (r *Routers) CheckAmenity(c echo.Context) error {
	return r.toggleAmenity(c, "http.routers.CheckAmenity", true)
}

// UncheckAmenity godoc
// @Summary Снять отметку удобства
// @Tags editor
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Param improvement_id path int true "ID удобства"
// @Success 200 {object} response.Response{data=editor.SessionView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/amenities/{improvement_id} [delete]
func (r *Routers) UncheckAmenity(c echo.Context) error {
	return r.toggleAmenity(c, "http.routers.UncheckAmenity", false)
}

func (r *Routers) toggleAmenity(c echo.Context, op string, checked bool) error {
	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	improvementID, err := strconv.Atoi(c.Param("improvement_id"))
	if err != nil || improvementID <= 0 {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, "improvement_id must be a positive integer"))
	}

	view, err := r.EditorService.SetImprovement(c.Request().Context(), agent.ID, c.Param("id"), improvementID, checked)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// ReplaceImages godoc
// @Summary Заменить новые изображения
// @Description Полностью заменяет набор добавленных изображений. Пустой запрос очищает набор.
// @Tags editor
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Param images formData file false "Изображения (jpg, jpeg, png)"
// @Success 200 {object} response.Response{data=editor.SessionView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/images [put]
func (r *Routers) ReplaceImages(c echo.Context) error {
	const op = "http.routers.ReplaceImages"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("failed to parse multipart form", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, "multipart/form-data expected"))
	}
	files := form.File[imagesField]

	log.Debug("got images for upload", slog.Int("count", len(files)))

	view, err := r.EditorService.ReplaceImages(c.Request().Context(), agent.ID, c.Param("id"), files)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// DeleteImage godoc
// @Summary Удалить существующее изображение
// @Description Помечает изображение объекта на удаление. Повторный вызов ничего не меняет.
// @Tags editor
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Param image_id path string true "ID изображения"
// @Success 200 {object} response.Response{data=editor.SessionView}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/images/{image_id} [delete]
func (r *Routers) DeleteImage(c echo.Context) error {
	const op = "http.routers.DeleteImage"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	view, err := r.EditorService.DeleteImage(c.Request().Context(), agent.ID, c.Param("id"), c.Param("image_id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// ValidateDraft godoc
// @Summary Проверить черновик
// @Description Только проверка, без обращения к API объектов.
// @Tags editor
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Success 200 {object} response.Response{data=models.ValidationResult}
// @Failure 404 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/validate [post]
func (r *Routers) ValidateDraft(c echo.Context) error {
	const op = "http.routers.ValidateDraft"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	result, err := r.EditorService.Validate(c.Request().Context(), agent.ID, c.Param("id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

// Submit godoc
// @Summary Отправить объявление
// @Description Создаёт или обновляет объект. Одновременно допускается одна отправка на сессию.
// @Tags editor
// @Produce json
// @Param id path string true "ID сессии" format(uuid)
// @Success 200 {object} response.Response{data=editor.Outcome}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Отправка уже идёт"
// @Failure 410 {object} response.ErrorResponse "Сессия закрыта во время отправки"
// @Failure 422 {object} response.ErrorResponse "Ошибки валидации или правила формы"
// @Failure 502 {object} response.ErrorResponse "API объектов вернуло ошибку"
// @Security BearerAuth
// @Router /api/v1/editor/sessions/{id}/submit [post]
func (r *Routers) Submit(c echo.Context) error {
	const op = "http.routers.Submit"

	log := r.log.With(
		slog.String("op", op),
		slog.String("session_id", c.Param("id")),
	)

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	outcome, err := r.EditorService.Submit(c.Request().Context(), agent.ID, c.Param("id"))
	if err != nil {
		return r.writeError(c, log, err)
	}

	log.Info("listing submitted", slog.String("mode", string(outcome.Mode)))

	return c.JSON(http.StatusOK, response.SuccessResponse(outcome))
}

// ListSubmissions godoc
// @Summary История отправок агента
// @Tags editor
// @Produce json
// @Param limit query int false "Количество записей (по умолчанию 20, максимум 100)"
// @Success 200 {object} response.Response{data=[]models.SubmissionRecord}
// @Failure 500 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/submissions [get]
func (r *Routers) ListSubmissions(c echo.Context) error {
	const op = "http.routers.ListSubmissions"

	log := r.log.With(slog.String("op", op))

	agent, ok := AgentFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	limit := uint64(defaultHistoryLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, "limit must be a positive integer"))
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := r.EditorService.History(c.Request().Context(), agent.ID, limit)
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(records))
}

// Catalogs godoc
// @Summary Справочники формы
// @Description Типы объектов, типы сделки и удобства.
// @Tags catalogs
// @Produce json
// @Success 200 {object} response.Response{data=models.Catalogs}
// @Failure 502 {object} response.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/editor/catalogs [get]
func (r *Routers) Catalogs(c echo.Context) error {
	const op = "http.routers.Catalogs"

	log := r.log.With(slog.String("op", op))

	catalogs, err := r.CatalogService.Catalogs(c.Request().Context())
	if err != nil {
		return r.writeError(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(catalogs))
}

// Health godoc
// @Summary Проверка живости
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}
