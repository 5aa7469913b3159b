package configuration

import (
	"os"
	"time"

	"github.com/costumeworks/suitfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	ButtonPollingRate   time.Duration `json:"buttonPollingRate"`
	ButtonDebounceCount int           `json:"buttonDebounceCount"`

	PowerPollingRate   time.Duration `json:"powerPollingRate"`
	PowerDebounceCount int           `json:"powerDebounceCount"`

	IndicatorOnDuration time.Duration `json:"indicatorOnDuration"`

	Gpio       GpioConfig       `json:"gpio"`
	Pwm        PwmConfig        `json:"pwm"`
	Adc        AdcConfig        `json:"adc"`
	Statistics StatisticsConfig `json:"statistics"`
}

// GpioConfig describes the GPIO character device lines used for the
// two buttons and the master load-enable output.
type GpioConfig struct {
	Chip            string `json:"chip"`
	PlusButtonLine  int    `json:"plusButtonLine"`
	MinusButtonLine int    `json:"minusButtonLine"`
	LoadEnableLine  int    `json:"loadEnableLine"`
}

// PwmConfig holds the sysfs-style duty file paths of the five PWM channels.
type PwmConfig struct {
	FanPath   string `json:"fanPath"`
	DummyPath string `json:"dummyPath"`
	RedPath   string `json:"redPath"`
	GreenPath string `json:"greenPath"`
	BluePath  string `json:"bluePath"`
}

// AdcConfig holds the raw ADC sample file paths of the two CC lines
// and the internal reference channel.
type AdcConfig struct {
	Cc1Path  string `json:"cc1Path"`
	Cc2Path  string `json:"cc2Path"`
	VrefPath string `json:"vrefPath"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("suitfan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/suitfan/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/suitfan/suitfan.db")

	viper.SetDefault("ButtonPollingRate", 5*time.Millisecond)
	viper.SetDefault("ButtonDebounceCount", 8)

	viper.SetDefault("PowerPollingRate", 5*time.Millisecond)
	viper.SetDefault("PowerDebounceCount", 10)

	viper.SetDefault("IndicatorOnDuration", 10*time.Second)

	viper.SetDefault("gpio.chip", "gpiochip0")
	viper.SetDefault("gpio.plusButtonLine", 9)
	viper.SetDefault("gpio.minusButtonLine", 8)
	viper.SetDefault("gpio.loadEnableLine", 0)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// DetectConfigFile tries to read the configuration file and returns
// the path of the file that was used, if any.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// a missing config file is fine, defaults apply
			return ""
		}
		ui.Fatal("Error reading config file: %v", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
