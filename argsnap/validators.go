package argsnap

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type minMax struct{ min, max float64 }

// ValidMinMax accepts numbers within [min, max]. Reversed bounds are swapped.
func ValidMinMax(lo, hi float64) Validator {
	if lo > hi {
		lo, hi = hi, lo
	}
	return minMax{min: lo, max: hi}
}

func (v minMax) Validate(values []string) error {
	for _, s := range values {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if n < v.min || n > v.max {
			return fmt.Errorf("%s is not between %s and %s", s, formatFloat(v.min), formatFloat(v.max))
		}
	}
	return nil
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// ValidChoice accepts only the listed values.
func ValidChoice(choices ...string) Validator {
	choices = append([]string(nil), choices...)
	return ValidatorFunc(func(values []string) error {
		for _, s := range values {
			if !containsString(choices, s) {
				quoted := make([]string, len(choices))
				for i, c := range choices {
					quoted[i] = strconv.Quote(c)
				}
				return fmt.Errorf("%q is not a choice value (%s)", s, strings.Join(quoted, ", "))
			}
		}
		return nil
	})
}

// ValidPath accepts values naming an existing filesystem entry.
func ValidPath() Validator {
	return ValidatorFunc(func(values []string) error {
		for _, s := range values {
			if _, err := os.Stat(s); err != nil {
				return fmt.Errorf("%q is not a valid path", s)
			}
		}
		return nil
	})
}

// ValidFile accepts values naming an existing regular file.
func ValidFile() Validator {
	return ValidatorFunc(func(values []string) error {
		for _, s := range values {
			info, err := os.Stat(s)
			if err != nil {
				return fmt.Errorf("%q is not a valid path", s)
			}
			if !info.Mode().IsRegular() {
				return fmt.Errorf("%q is not a file", s)
			}
		}
		return nil
	})
}

// ValidDir accepts values naming an existing directory.
func ValidDir() Validator {
	return ValidatorFunc(func(values []string) error {
		for _, s := range values {
			info, err := os.Stat(s)
			if err != nil {
				return fmt.Errorf("%q is not a valid path", s)
			}
			if !info.IsDir() {
				return fmt.Errorf("%q is not a directory", s)
			}
		}
		return nil
	})
}

// ValidRegex accepts values matching pattern. An invalid pattern rejects
// every value.
func ValidRegex(pattern string) Validator {
	re, err := regexp.Compile(pattern)
	return ValidatorFunc(func(values []string) error {
		if err != nil {
			return fmt.Errorf("invalid regex pattern %q: %v", pattern, err)
		}
		for _, s := range values {
			if !re.MatchString(s) {
				return fmt.Errorf("%q does not match %q", s, pattern)
			}
		}
		return nil
	})
}

// ValidSemver accepts semantic versions satisfying constraint, e.g.
// ">= 1.2, < 2". Values are normalized to their canonical form.
func ValidSemver(constraint string) Validator {
	c, cerr := semver.NewConstraint(constraint)
	return ValidatorFunc(func(values []string) error {
		if cerr != nil {
			return fmt.Errorf("invalid version constraint %q: %v", constraint, cerr)
		}
		for i, s := range values {
			v, err := semver.NewVersion(s)
			if err != nil {
				return fmt.Errorf("%q is not a semantic version", s)
			}
			if ok, errs := c.Validate(v); !ok {
				if len(errs) > 0 {
					return errs[0]
				}
				return fmt.Errorf("%s does not satisfy %q", s, constraint)
			}
			values[i] = v.String()
		}
		return nil
	})
}

// ValidTransform rewrites every value with fn.
func ValidTransform(fn func(string) string) Validator {
	return ValidatorFunc(func(values []string) error {
		for i, s := range values {
			values[i] = fn(s)
		}
		return nil
	})
}

// ValidAll runs validators in order and stops at the first failure.
func ValidAll(validators ...Validator) Validator {
	return ValidatorFunc(func(values []string) error {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if err := v.Validate(values); err != nil {
				return err
			}
		}
		return nil
	})
}
