package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/viper"

	"github.com/lowaak/hiit-timer/internal/config"
	"github.com/lowaak/hiit-timer/internal/cues"
	"github.com/lowaak/hiit-timer/internal/playback"
	"github.com/lowaak/hiit-timer/internal/trainer"
	"github.com/lowaak/hiit-timer/internal/wakelock"
)

const uiLogBuffer = 100

// runTimer wires the application together and blocks until the UI exits
func runTimer(v *viper.Viper) error {
	settings, err := config.Load(v)
	if err != nil {
		return err
	}

	uiLogChan := make(chan string, uiLogBuffer)
	logger, logCloser := config.NewLogger(settings.LogFile, uiLogChan)
	defer logCloser.Close()
	logger.Printf("Main: Starting hiit-timer")
	if used := v.ConfigFileUsed(); used != "" {
		logger.Printf("Main: Using config file %s", used)
	}

	uiModel := trainer.NewUIModel(logger, uiLogChan)
	defer uiModel.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	app := tview.NewApplication().SetScreen(screen)

	dispatcher := cues.NewDispatcher(logger, cues.Sinks{
		Tone:      cues.NewBellToneSink(screen),
		Speech:    cues.NewSpeechSink(logger),
		Vibration: cues.NoopVibration,
	}, cues.TogglesFrom(settings.Workout()))
	defer dispatcher.Shutdown()

	engine := playback.New(playback.Options{
		Cues:      dispatcher,
		WakeLock:  wakelock.NewHolder(logger, wakelock.New()),
		KeepAwake: settings.KeepAwake,
		Logger:    logger,
	})

	workoutManager := trainer.NewWorkoutManager(trainer.WorkoutManagerArgs{
		Model:         uiModel,
		Engine:        engine,
		Cues:          dispatcher,
		FrameInterval: settings.FrameInterval,
		Logger:        logger,
	})
	uiController := trainer.NewUIController(uiModel, workoutManager, logger)
	defer uiController.Shutdown()

	if err := uiController.ApplySettings(settings.Workout()); err != nil {
		logger.Printf("Main: No plan loaded, fix the settings (press 2)")
	}

	config.Watch(v, logger, func(s config.Settings) {
		// Refused by the workout manager while a session is running
		_ = uiController.ReloadSettings(s.Workout())
	})

	view := trainer.NewCursesUIView(logger, app, uiModel)
	baseView := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:   view,
		UIModel:      uiModel,
		UIController: uiController,
		Logger:       logger,
	})
	defer baseView.Shutdown()

	if err := baseView.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	logger.Printf("Main: UI closed")
	return nil
}
