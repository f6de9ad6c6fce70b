package config

import (
	"encoding/json"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const schemaSource = `
#Config: {
	workhours_per_week:    number & >=0 & <=168
	daily_worktime_low:    number & >=0 & <=24
	daily_worktime_medium: number & >=daily_worktime_low & <=24
	daily_worktime_good:   number & >=daily_worktime_medium & <=24
	data_dir:              string
}
`

// Validate checks c against the config schema: hours are non-negative, the
// week has at most 168 hours and the daily thresholds are ordered
// low <= medium <= good.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return &Error{Code: ErrCodeSchema, Err: err}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return &Error{Code: ErrCodeSerialization, Err: err}
	}
	value := ctx.CompileBytes(data)
	if err := value.Err(); err != nil {
		return &Error{Code: ErrCodeSerialization, Err: err}
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &Error{Code: ErrCodeSchema, Err: err}
	}
	return nil
}
