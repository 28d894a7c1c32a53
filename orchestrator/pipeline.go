// Package orchestrator runs the full diarization pipeline: preprocess the
// audio, call the diarization service, persist the CSV/RTTM outputs,
// render the plot and evaluate against a reference when one exists.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/diarization-pipeline/clients"
	cfg "github.com/maastricht-university/diarization-pipeline/config"
	"github.com/maastricht-university/diarization-pipeline/der"
	"github.com/maastricht-university/diarization-pipeline/rttm"
	"github.com/maastricht-university/diarization-pipeline/timeline"
)

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	log  logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		cfg:  c,
		http: clients.NewHTTP(c.Timeout(), c.Auth.Token),
		log:  log,
	}
}

// FileID derives the recording identifier from an audio path.
func FileID(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run executes the whole pipeline for one recording and returns what was
// produced. Visualization and evaluation are best-effort: a missing
// service or reference file downgrades to a warning.
func (p *Pipeline) Run(ctx context.Context, audioPath string) (*RunResult, error) {
	if p.cfg.Services.Diarization.URL == "" {
		return nil, fmt.Errorf("diarization service url not configured")
	}

	fileID := FileID(audioPath)
	sid, outDir, err := mkSessionDir(p.cfg.Paths.Outputs)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{"file": fileID, "session": sid}).Info("pipeline starting")

	info, err := ProbeAudio(audioPath)
	if err != nil {
		return nil, err
	}
	if p.cfg.Audio.SampleRate > 0 && info.SampleRate != p.cfg.Audio.SampleRate {
		p.log.WithFields(logrus.Fields{
			"got":  info.SampleRate,
			"want": p.cfg.Audio.SampleRate,
		}).Warn("sample rate differs from configured target, service will resample")
	}

	processedPath := filepath.Join(outDir, fileID+"_processed.wav")
	processed, err := PreprocessAudio(audioPath, processedPath)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	p.log.WithField("duration_s", fmt.Sprintf("%.2f", processed.DurationSeconds)).Info("audio preprocessed")

	resp, err := p.http.Diarize(ctx, p.cfg.Services.Diarization.URL, processedPath, clients.DiarizeParams{
		MinSpeakers:         p.cfg.Diarization.MinSpeakers,
		MaxSpeakers:         p.cfg.Diarization.MaxSpeakers,
		ClusteringThreshold: p.cfg.Diarization.ClusteringThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("diarize: %w", err)
	}

	tl, err := timeline.New(resp.Segments...)
	if err != nil {
		return nil, fmt.Errorf("diarization output: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"segments": tl.Len(),
		"speakers": resp.NumSpeakers,
	}).Info("diarization complete")

	res := &RunResult{
		SessionID:   sid,
		OutDir:      outDir,
		FileID:      fileID,
		Audio:       processed,
		Segments:    tl.Segments(),
		NumSpeakers: resp.NumSpeakers,
		Changes:     SpeakerChanges(tl),
	}

	res.CSVPath = filepath.Join(outDir, fileID+"_diarization.csv")
	if err := rttm.WriteCSVFile(res.CSVPath, res.Segments); err != nil {
		return nil, err
	}
	res.RTTMPath = filepath.Join(outDir, fileID+"_diarization.rttm")
	if err := rttm.WriteFile(res.RTTMPath, fileID, res.Segments); err != nil {
		return nil, err
	}

	if url := p.cfg.Services.Visualization.URL; url != "" {
		plot, err := p.http.PlotTimeline(ctx, url, clients.PlotReq{
			FileID:    fileID,
			AudioPath: processedPath,
			Segments:  res.Segments,
			OutputDir: p.cfg.Paths.Plots,
		})
		if err != nil {
			p.log.WithError(err).Warn("visualization failed")
		} else {
			res.PlotPath = plot.Path
			p.log.WithField("plot", plot.Path).Info("plot rendered")
		}
	}

	var evaluation *der.Result
	refPath := filepath.Join(p.cfg.Paths.Data, fileID+".rttm")
	if _, statErr := os.Stat(refPath); statErr == nil {
		report, err := EvaluateFiles(p.log, refPath, res.RTTMPath)
		if err != nil {
			return nil, fmt.Errorf("evaluate: %w", err)
		}
		res.Report = report
		exported := report.Export(refPath, res.RTTMPath)
		evaluation = &exported
		derPath := filepath.Join(outDir, fileID+"_der_results.json")
		if err := writeJSON(derPath, exported); err != nil {
			return nil, err
		}
		if rate, ok := report.Rate(); ok {
			p.log.WithField("der", fmt.Sprintf("%.2f%%", rate*100)).Info("evaluation complete")
		} else {
			p.log.Warn("evaluation complete, DER undefined")
		}
	} else {
		p.log.WithField("reference", refPath).Warn("reference RTTM not found, skipping evaluation")
	}

	bundlePath, err := p.persist(res, evaluation)
	if err != nil {
		return nil, err
	}
	p.log.WithField("bundle", bundlePath).Info("pipeline finished")
	return res, nil
}
