package pipeline

import (
	"fmt"
	"strings"

	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// Pipeline is an ordered chain of codecs applied as one transform.
//
// Encode runs the stages first to last; Decode runs them last to first.
// Chains conventionally put filter codecs first and compressor stages last,
// so the compressors see the regularized output of the filters:
//
//	p, err := pipeline.New(cat, shuf, zstd)
//	sealed, err := p.Seal(raw)
//
// A Pipeline is immutable after construction and safe for concurrent use
// when its stages are.
type Pipeline struct {
	stages []codec.Codec
}

// New creates a pipeline from the given stages, applied in argument order
// on encode.
//
// Returns:
//   - *Pipeline: Ready-to-use pipeline
//   - error: errs.ErrEmptyPipeline when no stages are given,
//     errs.ErrInvalidConfig when a stage is nil
func New(stages ...codec.Codec) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, errs.ErrEmptyPipeline
	}

	for i, stage := range stages {
		if stage == nil {
			return nil, fmt.Errorf("%w: stage %d is nil", errs.ErrInvalidConfig, i)
		}
	}

	return &Pipeline{stages: append([]codec.Codec(nil), stages...)}, nil
}

// FromConfigs reconstructs a pipeline from an ordered list of configuration
// records, resolving each through the codec registry.
//
// Returns:
//   - *Pipeline: Reconstructed pipeline
//   - error: errs.ErrEmptyPipeline for an empty list, errs.ErrUnknownCodec
//     or a constructor error for individual records
func FromConfigs(cfgs []codec.Config) (*Pipeline, error) {
	if len(cfgs) == 0 {
		return nil, errs.ErrEmptyPipeline
	}

	stages := make([]codec.Codec, len(cfgs))
	for i, cfg := range cfgs {
		stage, err := codec.FromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		stages[i] = stage
	}

	return &Pipeline{stages: stages}, nil
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Stages returns a copy of the stage chain in encode order.
func (p *Pipeline) Stages() []codec.Codec {
	return append([]codec.Codec(nil), p.stages...)
}

// Encode runs src through every stage in order and returns the final
// encoded form.
func (p *Pipeline) Encode(src []byte) ([]byte, error) {
	cur := src
	for i, stage := range p.stages {
		var err error
		cur, err = stage.Encode(cur)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stage.ID(), err)
		}
	}

	return cur, nil
}

// Decode reverses Encode by running the stages in reverse order.
//
// Parameters:
//   - src: Output of Encode
//   - dst: Optional destination, handed to the first stage of the chain,
//     which produces the fully decoded data
//
// Returns:
//   - []byte: Decoded data; dst when it was supplied
//   - error: The failing stage's error, including errs.ErrInvalidDstSize
//     when dst has the wrong length
func (p *Pipeline) Decode(src, dst []byte) ([]byte, error) {
	cur := src
	for i := len(p.stages) - 1; i > 0; i-- {
		var err error
		cur, err = p.stages[i].Decode(cur, nil)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, p.stages[i].ID(), err)
		}
	}

	out, err := p.stages[0].Decode(cur, dst)
	if err != nil {
		return nil, fmt.Errorf("stage 0 (%s): %w", p.stages[0].ID(), err)
	}

	return out, nil
}

// Configs returns the configuration records of the stages in encode order.
// Feeding them to FromConfigs reconstructs an equivalent pipeline.
func (p *Pipeline) Configs() []codec.Config {
	cfgs := make([]codec.Config, len(p.stages))
	for i, stage := range p.stages {
		cfgs[i] = stage.Config()
	}

	return cfgs
}

// String returns a short description such as "Pipeline[categorize, zstd]".
func (p *Pipeline) String() string {
	ids := make([]string, len(p.stages))
	for i, stage := range p.stages {
		ids[i] = stage.ID()
	}

	return "Pipeline[" + strings.Join(ids, ", ") + "]"
}
