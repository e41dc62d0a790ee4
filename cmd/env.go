package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment variables that stand in for unset flags,
// e.g. HOSPITAL_SIM_SEED for --seed and HOSPITAL_SIM_ARRIVAL_RATES for --arrival-rates.
const EnvPrefix = "HOSPITAL_SIM_"

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Debugf("No env file at %s, relying on process environment", path)
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	logrus.Debugf("Loaded environment from %s", path)
	return nil
}

// envName maps a flag name to its environment variable.
func envName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv fills every flag not set on the command line from its environment variable.
func applyEnv(flags *pflag.FlagSet) error {
	var firstErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || firstErr != nil {
			return
		}
		v, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}
		if err := flags.Set(f.Name, v); err != nil {
			firstErr = fmt.Errorf("%s=%q: %w", envName(f.Name), v, err)
		}
	})
	return firstErr
}
