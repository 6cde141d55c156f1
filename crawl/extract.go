package crawl

import (
	"errors"

	"github.com/fwojciec/taxdoc"
)

var _ taxdoc.Extractor = (ChainExtractor)(nil)

// ChainExtractor tries each extractor in turn and returns the first success.
type ChainExtractor []taxdoc.Extractor

func (c ChainExtractor) Extract(html string) (*taxdoc.ExtractResult, error) {
	var errs []error
	for _, e := range c {
		result, err := e.Extract(html)
		if err == nil {
			return result, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, taxdoc.Errorf(taxdoc.ENOTFOUND, "no extractor configured")
	}
	return nil, errors.Join(errs...)
}
