package configuration

import (
	"fmt"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if len(config.DbPath) <= 0 {
		return fmt.Errorf("dbPath must not be empty")
	}

	if config.ButtonPollingRate <= 0 {
		return fmt.Errorf("buttonPollingRate must be > 0")
	}
	if config.ButtonDebounceCount < 1 {
		return fmt.Errorf("buttonDebounceCount must be >= 1")
	}

	if config.PowerPollingRate <= 0 {
		return fmt.Errorf("powerPollingRate must be > 0")
	}
	if config.PowerDebounceCount < 1 {
		return fmt.Errorf("powerDebounceCount must be >= 1")
	}

	if config.IndicatorOnDuration <= 0 {
		return fmt.Errorf("indicatorOnDuration must be > 0")
	}

	if config.Gpio.PlusButtonLine == config.Gpio.MinusButtonLine {
		return fmt.Errorf("plus and minus buttons cannot share GPIO line %d", config.Gpio.PlusButtonLine)
	}

	if config.Statistics.Enabled {
		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			return fmt.Errorf("invalid statistics port: %d", port)
		}
	}

	return nil
}
