package player

import (
	"flag"
	"fmt"
)

// EnumFlag defines a string flag on fs that only accepts values from safelist.
func EnumFlag(fs *flag.FlagSet, target *string, name string, safelist []string, usage string) {
	usageWithValues := fmt.Sprintf("%s, must be one of %v", usage, safelist)
	fs.Func(name, usageWithValues, func(flagValue string) error {
		for _, allowedValue := range safelist {
			if flagValue == allowedValue {
				*target = flagValue
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", safelist)
	})
}
