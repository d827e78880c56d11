package util

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every flag name when looking up its environment override
const EnvPrefix = "C2S_"

// SetFlagsFromEnvVars reads and updates flag values from environment variables with prefix C2S_
func SetFlagsFromEnvVars(cmd *cobra.Command) {
	apply := func(flags *pflag.FlagSet) {
		flags.VisitAll(func(f *pflag.Flag) {
			envName := FlagNameToEnvVar(f.Name, EnvPrefix)

			if value, present := os.LookupEnv(envName); present {
				if err := flags.Set(f.Name, value); err != nil {
					log.Infof("unable to configure flag %s using variable %s, err: %v", f.Name, envName, err)
				}
			}
		})
	}

	apply(cmd.Root().PersistentFlags())
	apply(cmd.Flags())
}

// FlagNameToEnvVar converts flag name to environment var name adding a prefix,
// replacing dashes and making all uppercase (e.g. clickonce-app is converted to C2S_CLICKONCE_APP)
func FlagNameToEnvVar(cmdFlag string, prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(cmdFlag, "-", "_"))
}
