package cli

import apperrors "github.com/agbru/bigcalc/internal/errors"

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider supplies theme colors to apperrors.HandleCalculationError.
type CLIColorProvider struct{}

func (c CLIColorProvider) Yellow() string { return ColorYellow() }
func (c CLIColorProvider) Reset() string  { return ColorReset() }
