package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param   *Parameter
	plain   float64
	hasDflt bool
}

// New creates a new parameter builder
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Skew:      1,
			Flags:     CanAutomate,
		},
	}
}

// Key sets the stable string identifier
func (b *Builder) Key(key string) *Builder {
	b.param.Key = key
	return b
}

// ShortName sets the short name
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Skew sets the skew of the normalized mapping, see SkewFactor
func (b *Builder) Skew(skew float64) *Builder {
	if skew > 0 {
		b.param.Skew = skew
	}
	return b
}

// Step sets a plain-value step size
func (b *Builder) Step(size float64) *Builder {
	b.param.StepSize = size
	if size > 0 && b.param.Max > b.param.Min {
		b.param.StepCount = int32((b.param.Max-b.param.Min)/size + 0.5)
	}
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.plain = value
	b.hasDflt = true
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// InGroup assigns the parameter to a unit
func (b *Builder) InGroup(unitID int32) *Builder {
	b.param.UnitID = unitID
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter
func (b *Builder) Build() *Parameter {
	if b.hasDflt {
		b.param.DefaultValue = b.param.Normalize(b.plain)
	}
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
