package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lifeadmin/internal/app"
	"lifeadmin/internal/engine"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
	Recurrence  string `json:"recurrence"`
}

// updateTaskRequest leaves absent fields unchanged. An empty or "none"
// recurrence clears it.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	Recurrence  *string `json:"recurrence"`
}

type overrideRequest struct {
	Tier string `json:"tier"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type outcomeResponse struct {
	Task    *engine.Task            `json:"task,omitempty"`
	Spawned *engine.Task            `json:"spawned,omitempty"`
	State   engine.ProgressionState `json:"state"`
	Events  []engine.Event          `json:"events"`
}

func newOutcomeResponse(out *app.Outcome) outcomeResponse {
	events := out.Events
	if events == nil {
		events = []engine.Event{}
	}
	return outcomeResponse{Task: out.Task, Spawned: out.Spawned, State: out.State, Events: events}
}

func (s *Server) writeError(c *gin.Context, err error) {
	var gate engine.GateError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrTaskNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrTitleRequired), errors.Is(err, app.ErrDueDateRequired), errors.Is(err, app.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrHideIncomplete), errors.As(err, &gate):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseRecurrence(v string) (*engine.Recurrence, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "none") {
		return nil, nil
	}
	f, err := engine.ParseFrequency(v)
	if err != nil {
		return nil, err
	}
	return &engine.Recurrence{Frequency: f}, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "account": s.svc.Account()})
}

func (s *Server) handleListTasks(c *gin.Context) {
	var (
		tasks []engine.Task
		err   error
	)
	if all, _ := strconv.ParseBool(c.DefaultQuery("all", "false")); all {
		tasks, err = s.svc.Tasks(c.Request.Context())
	} else {
		tasks, err = s.svc.VisibleTasks(c.Request.Context())
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	if tasks == nil {
		tasks = []engine.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.svc.Task(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	var due time.Time
	if strings.TrimSpace(req.DueDate) != "" {
		d, err := engine.ParseDueDate(req.DueDate, time.Now(), s.loc)
		if err != nil {
			s.badRequest(c, err.Error())
			return
		}
		due = d
	}
	rec, err := parseRecurrence(req.Recurrence)
	if err != nil {
		s.badRequest(c, err.Error())
		return
	}

	out, err := s.svc.CreateTask(c.Request.Context(), app.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    engine.ParsePriority(req.Priority),
		DueDate:     due,
		Recurrence:  rec,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOutcomeResponse(out))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}

	in := app.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Priority != nil {
		p := engine.ParsePriority(*req.Priority)
		in.Priority = &p
	}
	if req.DueDate != nil {
		d, err := engine.ParseDueDate(*req.DueDate, time.Now(), s.loc)
		if err != nil {
			s.badRequest(c, err.Error())
			return
		}
		in.DueDate = &d
	}
	if req.Recurrence != nil {
		rec, err := parseRecurrence(*req.Recurrence)
		if err != nil {
			s.badRequest(c, err.Error())
			return
		}
		in.Recurrence = rec
		in.SetRecurrence = true
	}

	out, err := s.svc.UpdateTask(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOutcomeResponse(out))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	out, err := s.svc.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOutcomeResponse(out))
}

func (s *Server) handleHideTask(c *gin.Context) {
	out, err := s.svc.HideTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOutcomeResponse(out))
}

func (s *Server) handleUnhideTask(c *gin.Context) {
	out, err := s.svc.UnhideTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOutcomeResponse(out))
}

// handleCalendar serves tasks due in [from, to). Both bounds are days;
// to defaults to one week after from, from defaults to today.
func (s *Server) handleCalendar(c *gin.Context) {
	now := time.Now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if v := c.Query("from"); v != "" {
		d, err := time.ParseInLocation(time.DateOnly, v, s.loc)
		if err != nil {
			s.badRequest(c, "from: want YYYY-MM-DD")
			return
		}
		from = d
	}
	to := from.AddDate(0, 0, 7)
	if v := c.Query("to"); v != "" {
		d, err := time.ParseInLocation(time.DateOnly, v, s.loc)
		if err != nil {
			s.badRequest(c, "to: want YYYY-MM-DD")
			return
		}
		to = d
	}

	tasks, err := s.svc.Calendar(c.Request.Context(), from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":  from.Format(time.DateOnly),
		"to":    to.Format(time.DateOnly),
		"tasks": tasks,
		"count": len(tasks),
	})
}

func (s *Server) handleProgress(c *gin.Context) {
	st, err := s.svc.Status(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		s.badRequest(c, "limit must be a positive integer")
		return
	}
	events, err := s.svc.History(c.Request.Context(), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (s *Server) handleStart(c *gin.Context) {
	out, err := s.svc.StartChallenges(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOutcomeResponse(out))
}

func (s *Server) handleReset(c *gin.Context) {
	if err := s.svc.StartOver(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleOverride(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	state, err := s.svc.Override(c.Request.Context(), engine.OverrideTier(strings.ToLower(strings.TrimSpace(req.Tier))))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (s *Server) handleSetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err.Error())
		return
	}
	if err := s.svc.SetTheme(c.Request.Context(), req.Theme); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": strings.ToLower(strings.TrimSpace(req.Theme))})
}

type challengeView struct {
	engine.Challenge
	Tier      int  `json:"tier"`
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
}

func (s *Server) handleChallenges(c *gin.Context) {
	state, err := s.svc.State(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	cat := engine.Catalog()
	out := make([]challengeView, 0, len(cat))
	for _, ch := range cat {
		out = append(out, challengeView{
			Challenge: ch,
			Tier:      ch.Tier(),
			Unlocked:  engine.ChallengeUnlocked(ch, state.Level),
			Completed: state.Challenges[ch.ID],
		})
	}
	c.JSON(http.StatusOK, gin.H{"challenges": out, "count": len(out)})
}

type themeView struct {
	engine.Theme
	Unlocked bool `json:"unlocked"`
}

func (s *Server) handleThemes(c *gin.Context) {
	state, err := s.svc.State(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	all := engine.Themes()
	out := make([]themeView, 0, len(all))
	for _, t := range all {
		out = append(out, themeView{Theme: t, Unlocked: engine.CanUseTheme(state, t.Value) == nil})
	}
	c.JSON(http.StatusOK, gin.H{
		"themes":   out,
		"unlocked": engine.UnlockedThemeCount(state.Level, state.Override),
	})
}

func (s *Server) handleRanks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ranks": engine.Ranks()})
}
