// Package bot wires the diary domain to the Telegram transport.
package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fitbot/core/config"
	"fitbot/core/logger"
	tg "fitbot/core/telegram"
	"fitbot/core/telegram/commands"
	tghelpers "fitbot/core/telegram/helpers"
	"fitbot/core/telegram/middleware"
	"fitbot/core/telegram/router"
	tgsender "fitbot/core/telegram/sender"
	"fitbot/internal/food"
	"fitbot/internal/metrics"
	"fitbot/internal/session"
	"fitbot/internal/weather"
	"fitbot/internal/wizard"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

// App is the assembled bot application.
type App struct {
	cfg    *config.Config
	store  *session.Store
	wizard *wizard.Wizard
	food   FoodService
}

// New assembles the application from configuration.
func New(cfg *config.Config) *App {
	weatherSvc := timedWeather{inner: weather.New(cfg.Weather)}
	foodSvc := timedFood{inner: food.New(cfg.Food)}

	store := session.NewStore()
	metrics.RegisterSessionsGauge(store.Len)

	return &App{
		cfg:    cfg,
		store:  store,
		wizard: wizard.New(weatherSvc),
		food:   foodSvc,
	}
}

// Store exposes the session store, mainly for tests.
func (a *App) Store() *session.Store { return a.store }

type timedWeather struct {
	inner *weather.Client
}

func (t timedWeather) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	start := time.Now()
	temp, err := t.inner.CurrentTemperature(ctx, city)
	metrics.ObserveExternal("weather", start, err)
	return temp, err
}

type timedFood struct {
	inner *food.Client
}

func (t timedFood) Search(ctx context.Context, query string) (food.Product, error) {
	start := time.Now()
	p, err := t.inner.Search(ctx, query)
	metrics.ObserveExternal("food", start, err)
	return p, err
}

// TelegramRunOptions builds the runtime wiring consumed by the bot runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Show what the bot can do",
	})
	reg.RegisterCommand("/set_profile", commands.Command{
		Handler:     a.handleSetProfile,
		Description: "Set up your profile",
		// A restart must win over an active dialogue.
		BypassDialog: true,
	})
	reg.RegisterCommand("/check_progress", commands.Command{
		Handler:     a.handleCheckProgress,
		Description: "Today's water and calorie summary",
	})
	reg.RegisterCommand("/log_water", commands.Command{
		Handler:     a.handleLogWater,
		Description: "Log drunk water in ml",
	})
	reg.RegisterCommand("/log_food", commands.Command{
		Handler:     a.handleLogFood,
		Description: "Log eaten food",
	})
	reg.RegisterCommand("/log_workout", commands.Command{
		Handler:     a.handleLogWorkout,
		Description: "Log a workout",
	})
	reg.RegisterCommand("/water_stat", commands.Command{
		Handler:     a.handleWaterStat,
		Description: "Water progress chart",
	})
	reg.RegisterCommand("/food_stat", commands.Command{
		Handler:     a.handleFoodStat,
		Description: "Calorie progress chart",
	})

	opts := tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      router.TextRoutes(a, a, reg, router.TextOptions{}),
		DispatcherOptions: tgsender.Options{
			QueueSize: 256,
			Workers:   4,
		},
		CommandMiddleware: func(name string, bypassDialog bool) tele.MiddlewareFunc {
			return middleware.DialogPriority(a, bypassDialog)
		},
	}

	if a.cfg.Monitoring.Enabled {
		addr := a.cfg.Monitoring.Address
		opts.OnStart = func(ctx context.Context, rt tg.Runtime) error {
			go func() {
				if err := metrics.Serve(ctx, addr); err != nil {
					logger.L.With("component", "metrics").Error("metrics server failed",
						slog.String("event", "listen.fail"),
						slog.String("listen", addr),
						slog.String("err", err.Error()),
					)
				}
			}()
			return nil
		}
	}

	return opts, nil
}

// InProgress reports whether the user is mid profile setup.
func (a *App) InProgress(userID int64) bool {
	return a.store.InProgress(userID)
}

// ManagerHandler feeds the message into the user's active setup dialogue.
func (a *App) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)

	var reply string
	_ = a.store.Do(userID, func(sess *session.Session) error {
		var err error
		reply, err = a.wizard.Submit(ctx, sess, c.Text())
		if err != nil {
			logDomainError(ctx, "wizard.submit", err)
			return nil
		}
		if sess.State == session.StateIdle {
			metrics.ProfilesCompletedTotal.Inc()
		}
		return nil
	})
	if reply == "" {
		return nil
	}
	return tghelpers.SendText(c, reply)
}

// HasPending reports whether the user owes a gram amount for a food lookup.
func (a *App) HasPending(userID int64) bool {
	return a.store.HasPending(userID)
}

// ReplyHandler consumes the gram answer for a pending food lookup.
func (a *App) ReplyHandler(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	var reply string
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		var err error
		reply, err = foodResolveReply(sess, c.Text())
		if err != nil {
			logDomainError(ctx, "food.resolve", err)
		}
		return nil
	})
	if reply == "" {
		return nil
	}
	return tghelpers.SendText(c, reply)
}

func logDomainError(ctx context.Context, op string, err error) {
	attrs := []slog.Attr{
		slog.String("event", op+".rejected"),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	}
	type coder interface{ Code() string }
	if c, ok := err.(coder); ok {
		attrs = append(attrs, slog.String("err_code", c.Code()))
	}
	logger.SVCDiary.LogAttrs(ctx, slog.LevelWarn, "command rejected", attrs...)
}

func countCommand(name string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "fail"
	}
	metrics.CommandsTotal.WithLabelValues(name, outcome).Inc()
}

func payload(c tele.Context) string {
	if m := c.Message(); m != nil {
		return m.Payload
	}
	return ""
}

func (a *App) handleStart(c tele.Context) error {
	countCommand("start", nil)
	return tghelpers.SendText(c, msgStart)
}

func (a *App) handleSetProfile(c tele.Context) error {
	var reply string
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		reply = a.wizard.Start(sess)
		return nil
	})
	countCommand("set_profile", nil)
	return tghelpers.SendText(c, reply)
}

func (a *App) handleCheckProgress(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	var reply string
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		var err error
		reply, err = progressReply(sess)
		countCommand("check_progress", err)
		if err != nil {
			logDomainError(ctx, "progress", err)
		}
		return nil
	})
	return tghelpers.SendText(c, reply)
}

func (a *App) handleLogWater(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	arg := payload(c)

	var reply string
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		var err error
		reply, err = waterReply(sess, arg)
		countCommand("log_water", err)
		if err != nil {
			logDomainError(ctx, "water.log", err)
			return nil
		}
		if ml, convErr := strconv.Atoi(strings.TrimSpace(arg)); convErr == nil {
			metrics.WaterLoggedMlTotal.Add(float64(ml))
		}
		return nil
	})
	return tghelpers.SendText(c, reply)
}

func (a *App) handleLogFood(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	productName := payload(c)

	var reply string
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		var err error
		reply, err = foodBeginReply(ctx, sess, a.food, productName)
		countCommand("log_food", err)
		if err != nil {
			logDomainError(ctx, "food.begin", err)
		}
		return nil
	})
	return tghelpers.SendText(c, reply)
}

func (a *App) handleLogWorkout(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	args := strings.Fields(payload(c))

	var reply string
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		var err error
		reply, err = workoutReply(sess, args)
		countCommand("log_workout", err)
		if err != nil {
			logDomainError(ctx, "workout.log", err)
		}
		return nil
	})
	return tghelpers.SendText(c, reply)
}
