package orchestrator

import (
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/diarization-pipeline/der"
	"github.com/maastricht-university/diarization-pipeline/rttm"
)

// EvaluateFiles loads a reference and a hypothesis RTTM file and computes
// the DER report. Differing recording identifiers are surfaced as a
// warning, the metric itself assumes the two files describe the same
// audio. An empty reference yields a report with an undefined rate.
func EvaluateFiles(log logrus.FieldLogger, refPath, hypPath string) (*der.Report, error) {
	refDoc, err := rttm.ReadFile(refPath)
	if err != nil {
		return nil, err
	}
	hypDoc, err := rttm.ReadFile(hypPath)
	if err != nil {
		return nil, err
	}

	if refDoc.FileID != "" && hypDoc.FileID != "" && refDoc.FileID != hypDoc.FileID {
		log.WithFields(logrus.Fields{
			"reference":  refDoc.FileID,
			"hypothesis": hypDoc.FileID,
		}).Warn("reference and hypothesis identify different recordings")
	}

	ref, err := refDoc.Timeline()
	if err != nil {
		return nil, err
	}
	hyp, err := hypDoc.Timeline()
	if err != nil {
		return nil, err
	}
	if ref.Empty() {
		log.WithField("reference", refPath).Warn("reference has no speech, DER is undefined")
	}

	return der.Evaluate(ref, hyp), nil
}
