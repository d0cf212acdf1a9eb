package levelbitmap

import "fmt"

type InvalidSpacingError struct {
	Spacing int64
}

func (e InvalidSpacingError) Error() string {
	return fmt.Sprintf("level spacing must be positive, got (%d)", e.Spacing)
}

type MisalignedLevelError struct {
	Level   int64
	Spacing int64
}

func (e MisalignedLevelError) Error() string {
	return fmt.Sprintf("level (%d) is not a multiple of spacing (%d)", e.Level, e.Spacing)
}
