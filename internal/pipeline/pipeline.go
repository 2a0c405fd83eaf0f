// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pipeline anonymises a document: it indexes persons over the whole text,
// runs the entity cascade and the person passes paragraph by paragraph, merges person
// tags that denote the same identity and finally audits the result for leaks.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"czanon/internal/audit"
	"czanon/internal/cascade"
	"czanon/internal/document"
	"czanon/internal/gazetteer"
	"czanon/internal/morph"
	"czanon/internal/normalize"
	"czanon/internal/observability"
	"czanon/internal/persons"
	"czanon/internal/registry"
)

var (
	punctBeforeTag = regexp.MustCompile(`([:.,])(\[\[)`)
	spaceRun       = regexp.MustCompile(` {2,}`)
)

// Options configures a Pipeline. Zero values fall back to an empty gazetteer, the
// built-in stoplists, no variant memoisation and no logging.
type Options struct {
	Engine    *morph.Engine
	Stoplists *gazetteer.Stoplists
	Variants  *morph.VariantCache
	Observer  *observability.StandardObserver
	Logger    *zerolog.Logger
}

// Pipeline is safe for concurrent use; every call works on its own session.
type Pipeline struct {
	cascade  *cascade.Cascade
	persons  *persons.Resolver
	variants *morph.VariantCache
	obs      *observability.StandardObserver
	log      zerolog.Logger
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	engine := opts.Engine
	if engine == nil {
		engine = morph.NewEngine(gazetteer.Empty())
	}
	stop := opts.Stoplists
	if stop == nil {
		stop = gazetteer.DefaultStoplists()
	}
	obs := opts.Observer
	if obs == nil {
		obs = observability.Nop()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Pipeline{
		cascade:  cascade.New(engine, stop),
		persons:  persons.New(engine, stop),
		variants: opts.Variants,
		obs:      obs,
		log:      logger,
	}
}

// Stats summarises one run.
type Stats struct {
	Paragraphs int                       `json:"paragraphs" yaml:"paragraphs"`
	Failed     int                       `json:"failed_paragraphs" yaml:"failed_paragraphs"`
	Persons    int                       `json:"persons" yaml:"persons"`
	Tags       int                       `json:"tags" yaml:"tags"`
	Leaks      int                       `json:"leaks" yaml:"leaks"`
	Categories map[registry.Category]int `json:"categories" yaml:"categories"`
}

// Result is the outcome of processing one document.
type Result struct {
	Session *registry.Session
	// Redirects maps person tags folded by the merge pass to their survivor.
	Redirects       map[string]string
	Leaks           []audit.Leak
	ParagraphErrors []*ProcessingError
	Stats           Stats
}

// TagMap is the tag map of the run.
func (r *Result) TagMap() map[string][]string {
	return r.Session.Map()
}

// Warnings are the messages a caller should surface: leaks and failed paragraphs.
func (r *Result) Warnings() []string {
	out := audit.Messages(r.Leaks)
	for _, e := range r.ParagraphErrors {
		out = append(out, e.Error())
	}
	return out
}

// Process anonymises the paragraphs of doc in place. It never fails as a whole:
// a paragraph that cannot be processed keeps its original text and is reported in
// Result.ParagraphErrors.
func (p *Pipeline) Process(doc document.Document, path string) *Result {
	done := p.obs.StartTiming("pipeline", "process", path)

	paras := doc.Paragraphs()
	texts := make([]string, len(paras))
	for i, para := range paras {
		texts[i] = para.Text()
	}
	out, res := p.run(texts, path)
	for i, para := range paras {
		if out[i] != texts[i] {
			para.SetText(out[i])
		}
	}

	done(len(res.ParagraphErrors) == 0, map[string]interface{}{
		"paragraphs": res.Stats.Paragraphs,
		"persons":    res.Stats.Persons,
		"tags":       res.Stats.Tags,
		"leaks":      res.Stats.Leaks,
	})
	return res
}

// ProcessFile reads the document at inPath, anonymises it and writes it to outPath.
// Read and write failures are fatal; nothing is written when reading fails.
func (p *Pipeline) ProcessFile(inPath, outPath string) (*Result, error) {
	doc, err := document.Open(inPath)
	if err != nil {
		return nil, NewProcessingError(ErrorTypeDocumentRead, "failed to read document", inPath, "document", err)
	}
	res := p.Process(doc, inPath)
	if err := doc.Save(outPath); err != nil {
		return res, NewProcessingError(ErrorTypeDocumentWrite, "failed to write document", outPath, "document", err)
	}
	return res, nil
}

// ProcessTexts anonymises paragraphs given as strings.
func (p *Pipeline) ProcessTexts(paragraphs []string) ([]string, *Result) {
	return p.run(paragraphs, "")
}

func (p *Pipeline) run(paragraphs []string, path string) ([]string, *Result) {
	sess := registry.NewSession(p.variants)
	res := &Result{Session: sess}

	cleaned := make([]string, len(paragraphs))
	for i, text := range paragraphs {
		cleaned[i] = normalize.CleanInvisibles(text)
	}
	source := strings.Join(cleaned, "\n")
	sess.SetSource(source)

	p.guard(res, path, -1, "persons", func() {
		p.persons.Index(source, sess)
	})
	p.log.Debug().Str("file_path", path).Int("persons", len(sess.Persons())).Msg("person index built")

	out := make([]string, len(paragraphs))
	copy(out, paragraphs)
	processed := make([]bool, len(paragraphs))
	for i, text := range cleaned {
		if strings.TrimSpace(text) == "" {
			continue
		}
		res.Stats.Paragraphs++
		ok := p.guard(res, path, i, "paragraph", func() {
			text = p.cascade.Run(text, sess)
			text = p.persons.Apply(text, sess)
			out[i] = p.persons.Residual(text, sess)
		})
		processed[i] = ok
	}

	res.Redirects = map[string]string{}
	p.guard(res, path, -1, "merge", func() {
		res.Redirects = p.persons.Merge(sess)
	})
	for i := range out {
		if !processed[i] {
			continue
		}
		out[i] = tidySpacing(persons.Rewrite(out[i], res.Redirects))
	}
	if len(res.Redirects) > 0 {
		p.log.Debug().Str("file_path", path).Int("merged", len(res.Redirects)).Msg("person tags merged")
	}

	res.Leaks = audit.Scan(strings.Join(out, "\n"))
	for _, leak := range res.Leaks {
		p.log.Warn().Str("file_path", path).Str("category", string(leak.Category)).
			Int("position", leak.Position).Msg("possible leak after anonymisation")
	}

	res.Stats.Failed = len(res.ParagraphErrors)
	res.Stats.Persons = len(sess.Persons())
	res.Stats.Tags = len(sess.Tags())
	res.Stats.Leaks = len(res.Leaks)
	res.Stats.Categories = sess.Counts()
	return out, res
}

// guard runs fn and turns a panic into a recoverable ProcessingError.
func (p *Pipeline) guard(res *Result, path string, paragraph int, component string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := NewProcessingError(ErrorTypeParagraph, "processing failed", path, component, fmt.Errorf("%v", r))
			err.Paragraph = paragraph
			res.ParagraphErrors = append(res.ParagraphErrors, err)
			p.log.Error().Err(err).Msg("paragraph skipped")
			ok = false
		}
	}()
	fn()
	return true
}

// tidySpacing puts a space between a tag and the punctuation before it and squeezes
// runs of spaces. Paragraphs without tags are returned as they are.
func tidySpacing(text string) string {
	if !strings.Contains(text, "[[") {
		return text
	}
	text = punctBeforeTag.ReplaceAllString(text, "$1 $2")
	return spaceRun.ReplaceAllString(text, " ")
}
