package calco

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	zerodashopt struct{}
	filenameopt string
)

// parsectx holds the settings for one parse.
type parsectx struct {
	// filename names the source in error positions.
	filename string
	// zerodash indicates that a source beginning with '-' is parsed with a
	// leading zero.
	zerodash bool
}

// ZeroPrefixDash tells the parser to read a source that begins with a minus
// sign as if it began with "0-". Command-line callers use this for arguments
// like "-2*3", which would otherwise parse as the unary term -2 followed by a
// dangling "*3". Positions in syntax errors still refer to the text as given.
func ZeroPrefixDash() ParseOption {
	return zerodashopt{}
}

func (zerodashopt) parseOption(p parsectx) parsectx {
	p.zerodash = true
	return p
}

// Filename sets the name of the source as it appears in syntax errors.
func Filename(name string) ParseOption {
	return filenameopt(name)
}

func (o filenameopt) parseOption(p parsectx) parsectx {
	p.filename = string(o)
	return p
}
