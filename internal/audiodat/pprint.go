package audiodat

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"

	"github.com/soundfield/micview/internal/util"
)

// PPrint writes the audio data as indented JSON, one entry per channel name.
// Integer channel names become their decimal string, matching how they would
// key a JSON object.
func PPrint(w io.Writer, dat Data) error {
	byKey := make(map[string][]float64, len(dat))
	for name, sig := range dat {
		byKey[name.String()] = sig
	}
	out, err := json.MarshalIndent(byKey, "", "    ")
	if err != nil {
		return util.WrapError("marshal audio data", err)
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return util.WrapError("write audio data", err)
	}
	return nil
}

// Summary writes a colored one-line digest per channel: sample count and peak
// amplitude. Channel order is deterministic.
func Summary(w io.Writer, dat Data) {
	channel := color.New(color.FgCyan, color.Bold)
	for _, name := range dat.Channels() {
		sig := dat[name]
		peak := 0.0
		for _, s := range sig {
			peak = max(peak, math.Abs(s))
		}
		fmt.Fprintf(w, "%s  %d samples, peak %.4f\n", channel.Sprint(name.String()), len(sig), peak)
	}
}
