package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/costumeworks/suitfan/internal/button"
	"github.com/costumeworks/suitfan/internal/configuration"
	"github.com/costumeworks/suitfan/internal/controller"
	"github.com/costumeworks/suitfan/internal/event"
	"github.com/costumeworks/suitfan/internal/hal"
	"github.com/costumeworks/suitfan/internal/persistence"
	"github.com/costumeworks/suitfan/internal/power"
	"github.com/costumeworks/suitfan/internal/statistics"
	"github.com/costumeworks/suitfan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	queue := event.NewQueue(event.DefaultCapacity)

	plusButton, minusButton, outputs, ccLines := initializeHardware(config)
	defer func() {
		_ = plusButton.Close()
		_ = minusButton.Close()
		_ = outputs.LoadEnable.Close()
	}()

	ctrl := controller.NewController(queue, outputs, pers, config.IndicatorOnDuration)
	monitor := power.NewMonitor(ccLines.cc1, ccLines.cc2, ccLines.vref, queue, config.PowerPollingRate, config.PowerDebounceCount)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		// === statistics exporter
		if config.Statistics.Enabled {
			statistics.Register(statistics.NewControllerCollector(ctrl))
			statistics.Register(statistics.NewPowerCollector(monitor))

			g.Add(func() error {
				port := config.Statistics.Port
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				mux := http.NewServeMux()
				mux.Handle("/metrics", handler)
				server := &http.Server{Addr: addr, Handler: mux}

				go func() {
					<-ctx.Done()
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					_ = server.Shutdown(timeoutCtx)
				}()

				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		// === button polling
		poller := button.NewPoller(plusButton, minusButton, queue, config.ButtonPollingRate, config.ButtonDebounceCount)

		g.Add(func() error {
			err := poller.Run(ctx)
			ui.Info("Button poller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error polling buttons: %v", err)
			}
		})
	}
	{
		// === supply power monitoring
		g.Add(func() error {
			err := monitor.Run(ctx)
			ui.Info("Power monitor stopped.")
			if err != nil {
				// calibration failure means we cannot trust any power
				// classification, operating blind is not an option
				ui.Fatal("Power monitor failed: %v", err)
			}
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error monitoring supply power: %v", err)
			}
		})
	}
	{
		// === controller
		g.Add(func() error {
			err := ctrl.Run(ctx)
			ui.Info("Controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

type ccInputs struct {
	cc1  hal.AnalogInput
	cc2  hal.AnalogInput
	vref hal.AnalogInput
}

// initializeHardware requests every line and channel the core needs.
// Failing here means operating with unverified assumptions about the
// hardware, so every error is fatal.
func initializeHardware(config configuration.Configuration) (*hal.CdevButton, *hal.CdevButton, *hal.Outputs, ccInputs) {
	plusButton, err := hal.NewCdevButton(config.Gpio.Chip, config.Gpio.PlusButtonLine)
	if err != nil {
		ui.Fatal("Unable to set up plus button: %v", err)
	}
	minusButton, err := hal.NewCdevButton(config.Gpio.Chip, config.Gpio.MinusButtonLine)
	if err != nil {
		ui.Fatal("Unable to set up minus button: %v", err)
	}

	loadEnable, err := hal.NewCdevOutput(config.Gpio.Chip, config.Gpio.LoadEnableLine)
	if err != nil {
		ui.Fatal("Unable to set up load enable line: %v", err)
	}

	for name, path := range map[string]string{
		"fan":   config.Pwm.FanPath,
		"dummy": config.Pwm.DummyPath,
		"red":   config.Pwm.RedPath,
		"green": config.Pwm.GreenPath,
		"blue":  config.Pwm.BluePath,
		"cc1":   config.Adc.Cc1Path,
		"cc2":   config.Adc.Cc2Path,
		"vref":  config.Adc.VrefPath,
	} {
		if len(path) <= 0 {
			ui.Fatal("Missing hardware path for %s channel", name)
		}
	}

	outputs := &hal.Outputs{
		Fan:        &hal.FilePwm{Path: config.Pwm.FanPath},
		Dummy:      &hal.FilePwm{Path: config.Pwm.DummyPath},
		Red:        &hal.FilePwm{Path: config.Pwm.RedPath},
		Green:      &hal.FilePwm{Path: config.Pwm.GreenPath},
		Blue:       &hal.FilePwm{Path: config.Pwm.BluePath},
		LoadEnable: loadEnable,
	}

	inputs := ccInputs{
		cc1:  &hal.FileAnalog{Path: config.Adc.Cc1Path},
		cc2:  &hal.FileAnalog{Path: config.Adc.Cc2Path},
		vref: &hal.FileAnalog{Path: config.Adc.VrefPath},
	}

	return plusButton, minusButton, outputs, inputs
}
