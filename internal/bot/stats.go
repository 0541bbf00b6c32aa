package bot

import (
	"fitbot/core/logger"
	tghelpers "fitbot/core/telegram/helpers"
	"fitbot/internal/charts"
	"fitbot/internal/diary"
	"fitbot/internal/session"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

func waterStatValues(p diary.Progress) []charts.Value {
	return []charts.Value{
		{Label: "logged", Value: p.LoggedWaterMl},
		{Label: "goal", Value: p.WaterGoalMl},
	}
}

func foodStatValues(p diary.Progress) []charts.Value {
	return []charts.Value{
		{Label: "eaten", Value: p.LoggedCalories},
		{Label: "burned", Value: p.BurnedCalories},
		{Label: "goal", Value: p.CalorieGoal},
	}
}

func (a *App) handleStat(c tele.Context, command, title string, values func(diary.Progress) []charts.Value) error {
	ctx := tghelpers.BuildContext(c)

	var (
		progress diary.Progress
		reply    string
	)
	_ = a.store.Do(c.Sender().ID, func(sess *session.Session) error {
		if !sess.HasProfile() {
			reply = msgProfileMissing
			countCommand(command, diary.ErrProfileMissing)
			logDomainError(ctx, command, diary.ErrProfileMissing)
			return nil
		}
		progress = sess.Ledger.Snapshot(sess.Goals)
		return nil
	})
	if reply != "" {
		return tghelpers.SendText(c, reply)
	}

	// Rendering happens outside the session lock.
	png, err := charts.Bar(title, values(progress))
	if err != nil {
		countCommand(command, err)
		logger.SVCDiary.LogAttrs(ctx, slog.LevelError, "chart render failed",
			slog.String("event", "chart.fail"),
			slog.String("command", command),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "Could not render the chart, please try again later.")
	}

	countCommand(command, nil)
	return tghelpers.SendPNG(c, png, title)
}

func (a *App) handleWaterStat(c tele.Context) error {
	return a.handleStat(c, "water_stat", "Water, ml", waterStatValues)
}

func (a *App) handleFoodStat(c tele.Context) error {
	return a.handleStat(c, "food_stat", "Calories, kcal", foodStatValues)
}
