package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// mcpTools serves the MCP tool calls. dx7 is nil when no DX7 is connected.
type mcpTools struct {
	cfg *Config
	dx7 *DX7
}

func newMCPServer(cfg *Config, dx7 *DX7) *server.MCPServer {
	t := &mcpTools{cfg: cfg, dx7: dx7}

	s := server.NewMCPServer(
		"DX7 Extract MCP",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	pathOpt := mcp.WithString("path", mcp.Required(), mcp.Description("Path of a DX7 32 voice bulk dump (.syx)."))
	voicesOpt := mcp.WithString("voices", mcp.Description("Voice numbers 1-32, e.g. \"1,4,11-16\". Defaults to the configured selection."))

	s.AddTool(mcp.NewTool("dx7_list-voices",
		mcp.WithDescription("Lists the numbers and names of the 32 voices in a DX7 bulk dump."),
		pathOpt,
	), t.listVoices)

	s.AddTool(mcp.NewTool("dx7_extract-voices",
		mcp.WithDescription("Decodes selected voices of a DX7 bulk dump into named parameters (JSON)."),
		pathOpt,
		voicesOpt,
	), t.extractVoices)

	s.AddTool(mcp.NewTool("dx7_render-table",
		mcp.WithDescription("Renders selected voices of a DX7 bulk dump as a C header with a uint8_t[N][156] table."),
		pathOpt,
		voicesOpt,
		mcp.WithString("array_name", mcp.Description("Name of the C array.")),
	), t.renderTable)

	s.AddTool(mcp.NewTool("dx7_send-voice",
		mcp.WithDescription("Sends one voice to the connected DX7 edit buffer and plays a few notes. The voice is taken from a bulk dump (path and voice) or given as JSON (voice-json)."),
		mcp.WithString("path", mcp.Description("Path of a DX7 32 voice bulk dump (.syx). Required unless voice-json is given.")),
		mcp.WithNumber("voice", mcp.Description("The voice number (1-32) in the bulk dump.")),
		mcp.WithString("voice-json", mcp.Description("A voice in JSON format, as returned by dx7_extract-voices. Out of range values are clamped.")),
		mcp.WithString("notes", mcp.Description("Notes to audition, e.g. \"C4 E4 G4\". Empty plays a default phrase.")),
	), t.sendVoice)

	return s
}

func runMCP(cfg *Config, dx7 *DX7) {
	s := newMCPServer(cfg, dx7)

	log.Println("Starting DX7 MCP server...")

	if err := server.ServeStdio(s); err != nil {
		log.Printf("Server error: %v", err)
	}
}

func (t *mcpTools) selection(request mcp.CallToolRequest) ([]int, error) {
	voices := request.GetString("voices", "")
	if voices == "" {
		return t.cfg.Selection, nil
	}
	return ParseSelection([]string{voices})
}

func (t *mcpTools) listVoices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("[mcp]Handling list voices request.")

	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dump, err := LoadBulkDump(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	type entry struct {
		Number int    `json:"number"`
		Name   string `json:"name,omitempty"`
		Error  string `json:"error,omitempty"`
	}
	var entries []entry
	for n := 1; n <= VoicesPerBank; n++ {
		p, _ := dump.Voice(n)
		name, err := p.Name()
		e := entry{Number: n, Name: name}
		if err != nil {
			e.Error = err.Error()
		}
		entries = append(entries, e)
	}

	asJson, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal voice list to JSON: %v", err)
	}
	return mcp.NewToolResultText(string(asJson)), nil
}

// load parses the dump and decodes the requested voices. Per voice errors
// are returned as text so the caller can pass them on.
func (t *mcpTools) load(request mcp.CallToolRequest) (string, []Selection, string, *mcp.CallToolResult) {
	path, err := request.RequireString("path")
	if err != nil {
		return "", nil, "", mcp.NewToolResultError(err.Error())
	}
	indices, err := t.selection(request)
	if err != nil {
		return "", nil, "", mcp.NewToolResultError(err.Error())
	}
	dump, err := LoadBulkDump(path)
	if err != nil {
		return "", nil, "", mcp.NewToolResultError(err.Error())
	}
	sel, errs := Extract(dump, indices)
	var problems []string
	for _, err := range errs {
		log.Printf("[mcp] %v", err)
		problems = append(problems, err.Error())
	}
	if len(sel) == 0 {
		return "", nil, "", mcp.NewToolResultError("no voices decoded: " + strings.Join(problems, "; "))
	}
	return path, sel, strings.Join(problems, "\n"), nil
}

func (t *mcpTools) extractVoices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("[mcp]Handling extract voices request.")

	_, sel, problems, failed := t.load(request)
	if failed != nil {
		return failed, nil
	}

	asJson, err := EncodeVoices("json", sel)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal voices to JSON: %v", err)
	}
	if problems != "" {
		return mcp.NewToolResultText(string(asJson) + "\n\nErrors:\n" + problems), nil
	}
	return mcp.NewToolResultText(string(asJson)), nil
}

func (t *mcpTools) renderTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("[mcp]Handling render table request.")

	path, sel, problems, failed := t.load(request)
	if failed != nil {
		return failed, nil
	}

	r, err := newConfiguredRenderer(t.cfg)
	if err != nil {
		return nil, err
	}
	files, err := r.Render(NewVoiceTable(path, request.GetString("array_name", t.cfg.ArrayName), sel))
	if err != nil {
		return nil, fmt.Errorf("failed to render voice table: %v", err)
	}
	header, ok := files[".h"]
	if !ok {
		return mcp.NewToolResultError("no .h template available"), nil
	}
	if problems != "" {
		header += "\n// Errors:\n// " + strings.ReplaceAll(problems, "\n", "\n// ") + "\n"
	}
	return mcp.NewToolResultText(header), nil
}

// voiceToSend resolves the voice of a send request, either from voice-json
// or from a voice of the bulk dump at path.
func (t *mcpTools) voiceToSend(request mcp.CallToolRequest) (UnpackedVoice, string, *mcp.CallToolResult) {
	if voiceJSON := request.GetString("voice-json", ""); voiceJSON != "" {
		v, err := DecodeVoice([]byte(voiceJSON))
		if err != nil {
			return UnpackedVoice{}, "", mcp.NewToolResultError(fmt.Sprintf("failed to unmarshal voice JSON: %v", err))
		}
		u, err := v.Params()
		if err != nil {
			return UnpackedVoice{}, "", mcp.NewToolResultError(err.Error())
		}
		return u, fmt.Sprintf("%q", v.Name), nil
	}

	path, err := request.RequireString("path")
	if err != nil {
		return UnpackedVoice{}, "", mcp.NewToolResultError("either voice-json or path and voice are required")
	}
	n, err := request.RequireInt("voice")
	if err != nil {
		return UnpackedVoice{}, "", mcp.NewToolResultError(err.Error())
	}
	dump, err := LoadBulkDump(path)
	if err != nil {
		return UnpackedVoice{}, "", mcp.NewToolResultError(err.Error())
	}
	sel, errs := Extract(dump, []int{n})
	if len(errs) > 0 {
		return UnpackedVoice{}, "", mcp.NewToolResultError(errs[0].Error())
	}
	return sel[0].Voice, fmt.Sprintf("%d %q", n, sel[0].Name), nil
}

func (t *mcpTools) sendVoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("[mcp]Handling send voice request.")

	u, label, failed := t.voiceToSend(request)
	if failed != nil {
		return failed, nil
	}
	if t.dx7 == nil {
		return mcp.NewToolResultError("no DX7 connected"), nil
	}

	if err := t.dx7.SendVoice(&u); err != nil {
		return nil, fmt.Errorf("failed to send voice: %v", err)
	}
	notes := request.GetString("notes", defaultAuditionNotes)
	if notes == "" {
		notes = defaultAuditionNotes
	}
	if err := auditionNotes(t.dx7, notes); err != nil {
		return nil, fmt.Errorf("failed to play notes: %v", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Voice %s sent successfully.", label)), nil
}
