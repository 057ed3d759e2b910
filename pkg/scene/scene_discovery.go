package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// builtInScenes lists the scenes compiled into the binary
var builtInScenes = []SceneInfo{
	{ID: "three-spheres", Name: "Three Spheres", Description: "Mirror, matte and glass spheres on a dark ground"},
	{ID: "glass-sphere", Name: "Glass Sphere", Description: "Five spheres on an arc behind a large glass sphere"},
	{ID: "ten-spheres", Name: "Ten Spheres", Description: "Five spheres on an arc and a row of tinted glass beads"},
	{ID: "random", Name: "Random Spheres", Description: "Hundreds of small random spheres around three large ones"},
	{ID: "reference", Name: "Reference", Description: "Two by two regression scene with one small sphere"},
}

// BuiltInSceneIDs returns the identifiers of the compiled-in scenes
func BuiltInSceneIDs() []string {
	ids := make([]string, len(builtInScenes))
	for i, info := range builtInScenes {
		ids[i] = info.ID
	}
	return ids
}

// NewBuiltInScene creates a compiled-in scene by id. Seed only affects scenes
// with random content.
func NewBuiltInScene(id string, seed int64) (*Scene, error) {
	switch id {
	case "three-spheres":
		return NewThreeSphereScene(), nil
	case "glass-sphere":
		return NewGlassSphereScene(), nil
	case "ten-spheres":
		return NewTenSphereScene(seed), nil
	case "random":
		return NewRandomScene(seed), nil
	case "reference":
		return NewReferenceScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", id)
	}
}

// Load resolves a scene reference: a built-in id, "json:<name>" for a file in
// the scenes directory, or a path ending in .json
func Load(ref string, seed int64) (*Scene, error) {
	switch {
	case strings.HasPrefix(ref, "json:"):
		dir := FindScenesDir()
		if dir == "" {
			return nil, fmt.Errorf("scene %q: no scenes directory found", ref)
		}
		return LoadJSONScene(filepath.Join(dir, strings.TrimPrefix(ref, "json:")+".json"))
	case strings.HasSuffix(ref, ".json"):
		return LoadJSONScene(ref)
	default:
		return NewBuiltInScene(ref, seed)
	}
}

// FindScenesDir returns the scenes directory next to the working directory, or ""
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans a directory and returns the scene files it holds.
// An empty dir means the default scenes directory.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		dir = FindScenesDir()
		if dir == "" {
			return []SceneInfo{}, nil
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseJSONMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata reads the descriptive fields of a scene file without building it
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          "json:" + nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, err
	}

	if header.Name != "" {
		info.Name = header.Name
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	if header.Group != "" {
		info.Group = header.Group
	}

	return info, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	var allScenes []SceneInfo
	for _, info := range builtInScenes {
		info.DisplayName = info.Name
		info.Group = builtInGroup
		info.Type = "builtin"
		allScenes = append(allScenes, info)
	}

	fileScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	allScenes = append(allScenes, fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: groupMap[builtInGroup]})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
