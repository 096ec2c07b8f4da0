package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/agsess/internal/pathenc"
)

// projectsDirName is the folder under the data root holding one directory
// per workspace.
const projectsDirName = "projects"

// Discover walks every workspace directory under <dataRoot>/projects and
// classifies its session files. A missing projects/ directory yields an
// empty result; a missing data root is a DataNotFoundError. Files that are
// not session files are skipped silently.
func (s *Store) Discover(workspaceFilter string) ([]SessionInfo, error) {
	if _, err := os.Stat(s.dataDir); err != nil {
		if os.IsNotExist(err) {
			return nil, &DataNotFoundError{DataPath: s.dataDir}
		}
		return nil, fmt.Errorf("failed to stat data directory: %w", err)
	}

	projectsDir := filepath.Join(s.dataDir, projectsDirName)
	workspaces, err := os.ReadDir(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	filter := strings.TrimRight(workspaceFilter, "/")

	var infos []SessionInfo
	for _, ws := range workspaces {
		if !ws.IsDir() {
			continue
		}
		projectPath := pathenc.Decode(ws.Name())
		if filter != "" && projectPath != filter {
			continue
		}

		wsDir := filepath.Join(projectsDir, ws.Name())
		files, err := os.ReadDir(wsDir)
		if err != nil {
			s.log.WithError(err).WithField("dir", wsDir).Debug("skipping unreadable workspace dir")
			continue
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			fi, ok := pathenc.ClassifyFile(file.Name())
			if !ok {
				continue
			}
			stat, err := file.Info()
			if err != nil {
				continue
			}
			infos = append(infos, SessionInfo{
				ID:          fi.SessionID,
				FilePath:    filepath.Join(wsDir, file.Name()),
				ProjectPath: projectPath,
				EncodedPath: ws.Name(),
				IsAgent:     fi.IsAgent,
				AgentID:     fi.AgentID,
				ModTime:     stat.ModTime(),
			})
		}
	}

	return infos, nil
}
