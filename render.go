package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer turns a selection of voices into source files using text
// templates, one output per template.
type Renderer struct {
	Template *template.Template
}

// VoiceTable is the data handed to the templates.
type VoiceTable struct {
	Source    string
	ArrayName string
	VoiceSize int
	Voices    []TableVoice
}

type TableVoice struct {
	Index  int
	Name   string
	Params []int
}

// NewRenderer returns a renderer using the built-in C header template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, errors.Wrap(err, "could not create templates")
	}
	return &Renderer{Template: tmpl}, nil
}

// NewRendererFromTemplates parses every file in templateDirectory.
func NewRendererFromTemplates(templateDirectory string) (*Renderer, error) {
	globPtrn := filepath.Join(templateDirectory, "*.*")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, errors.Wrapf(err, `could not create template based on directory "%v"`, templateDirectory)
	}
	return &Renderer{Template: tmpl}, nil
}

// NewVoiceTable prepares the template data for sel.
func NewVoiceTable(source, arrayName string, sel []Selection) *VoiceTable {
	t := &VoiceTable{Source: source, ArrayName: arrayName, VoiceSize: UnpackedVoiceSize}
	for _, s := range sel {
		params := make([]int, len(s.Voice))
		for i, b := range s.Voice {
			params[i] = int(b)
		}
		t.Voices = append(t.Voices, TableVoice{Index: s.Index, Name: s.Name, Params: params})
	}
	return t
}

// Render executes every template. The result is keyed by the template's file
// extension, e.g. ".h".
func (r *Renderer) Render(t *VoiceTable) (map[string]string, error) {
	retmap := map[string]string{}
	for _, tmpl := range r.Template.Templates() {
		name := tmpl.Name()
		if filepath.Ext(name) == "" {
			continue
		}
		result := bytes.NewBufferString("")
		if err := r.Template.ExecuteTemplate(result, name, t); err != nil {
			return nil, errors.Wrapf(err, `could not execute template "%v"`, name)
		}
		retmap[filepath.Ext(name)] = result.String()
	}
	return retmap, nil
}

// EncodeVoices serializes sel as named voices in json or yaml.
func EncodeVoices(format string, sel []Selection) ([]byte, error) {
	voices := make([]*Voice, 0, len(sel))
	for _, s := range sel {
		v := NewVoice(&s.Voice)
		v.Number = s.Index
		voices = append(voices, v)
	}
	switch format {
	case "json":
		return json.MarshalIndent(voices, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(voices)
	}
	return nil, errors.Errorf("unknown output format %q", format)
}

// DecodeVoices is the inverse of EncodeVoices. JSON is tried first, then YAML.
func DecodeVoices(data []byte) ([]*Voice, error) {
	var voices []*Voice
	if errJSON := json.Unmarshal(data, &voices); errJSON != nil {
		if errYaml := yaml.Unmarshal(data, &voices); errYaml != nil {
			return nil, errors.Errorf("voices could not be unmarshaled as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return voices, nil
}

// DecodeVoice reads exactly one voice, given either as a single object or as
// a one element list like the output of EncodeVoices.
func DecodeVoice(data []byte) (*Voice, error) {
	voices, err := DecodeVoices(data)
	if err != nil {
		var v Voice
		if errOne := json.Unmarshal(data, &v); errOne != nil {
			return nil, err
		}
		return &v, nil
	}
	if len(voices) != 1 {
		return nil, errors.Errorf("expected one voice, got %d", len(voices))
	}
	return voices[0], nil
}
