package pipeline

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arco/codec"
	"github.com/arloliu/arco/errs"
)

// Seal encodes src through the pipeline and wraps the result in a
// self-describing container: the fixed header, the stage configurations as
// a JSON array, and the encoded payload. Open reconstructs the pipeline
// from the container alone, so no out-of-band state is needed to decode it
// later.
//
// Returns:
//   - []byte: Sealed container
//   - error: An encode error from a stage, or a marshalling error for a
//     configuration the stages produced
func (p *Pipeline) Seal(src []byte) ([]byte, error) {
	if len(p.stages) > math.MaxUint8 {
		return nil, fmt.Errorf("pipeline has %d stages, the container stores at most %d", len(p.stages), math.MaxUint8)
	}

	payload, err := p.Encode(src)
	if err != nil {
		return nil, err
	}

	cfgJSON, err := gojson.Marshal(p.Configs())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidConfig, err)
	}
	if uint64(len(cfgJSON)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: configuration takes %d bytes", errs.ErrInvalidConfigSize, len(cfgJSON))
	}

	hdr := Header{
		Options:    MagicV1Opt,
		StageCount: uint8(len(p.stages)),
		ConfigSize: uint32(len(cfgJSON)),
		Checksum:   xxhash.Sum64(payload),
	}

	out := make([]byte, 0, HeaderSize+len(cfgJSON)+len(payload))
	out = append(out, hdr.Bytes()...)
	out = append(out, cfgJSON...)
	out = append(out, payload...)

	return out, nil
}

// Open validates a sealed container and reconstructs the pipeline embedded
// in it. The returned payload slice aliases data; it is still encoded and
// is what Decode on the returned pipeline accepts.
//
// Parameters:
//   - data: Sealed container produced by Seal
//
// Returns:
//   - *Pipeline: Pipeline reconstructed from the embedded configuration
//   - []byte: Encoded payload section of the container
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber,
//     errs.ErrInvalidHeaderFlags, errs.ErrInvalidConfigSize,
//     errs.ErrChecksumMismatch, errs.ErrStageCountMismatch,
//     errs.ErrEmptyPipeline or a configuration error, in validation order
func Open(data []byte) (*Pipeline, []byte, error) {
	var hdr Header
	if err := hdr.Parse(data); err != nil {
		return nil, nil, err
	}

	if hdr.StageCount == 0 {
		return nil, nil, errs.ErrEmptyPipeline
	}

	if int64(hdr.ConfigSize) > int64(len(data)-HeaderSize) {
		return nil, nil, fmt.Errorf("%w: configuration claims %d bytes, container has %d after the header",
			errs.ErrInvalidConfigSize, hdr.ConfigSize, len(data)-HeaderSize)
	}
	end := HeaderSize + int(hdr.ConfigSize)

	payload := data[end:]
	if got := xxhash.Sum64(payload); got != hdr.Checksum {
		return nil, nil, fmt.Errorf("%w: stored %#016x, computed %#016x", errs.ErrChecksumMismatch, hdr.Checksum, got)
	}

	cfgs, err := codec.ParseConfigs(data[HeaderSize:end])
	if err != nil {
		return nil, nil, err
	}
	if len(cfgs) != int(hdr.StageCount) {
		return nil, nil, fmt.Errorf("%w: header says %d stages, configuration has %d",
			errs.ErrStageCountMismatch, hdr.StageCount, len(cfgs))
	}

	p, err := FromConfigs(cfgs)
	if err != nil {
		return nil, nil, err
	}

	return p, payload, nil
}

// Unseal opens a sealed container and decodes its payload in one step.
//
// Parameters:
//   - data: Sealed container produced by Seal
//   - dst: Optional destination for the decoded data
//
// Returns:
//   - []byte: Fully decoded data; dst when it was supplied
//   - error: Any Open validation error, or a decode error from a stage
func Unseal(data, dst []byte) ([]byte, error) {
	p, payload, err := Open(data)
	if err != nil {
		return nil, err
	}

	return p.Decode(payload, dst)
}
