package util

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
)

const nanoidPrefixLength = 10

// Example output for "ex.txt": "21313123123_ex.txt"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix, err := GenerateNChar(nanoidPrefixLength)
	if err != nil {
		uniquePrefix = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%s", uniquePrefix, SanitizeFileName(fileName))
}

// Keeps the extension and a slugified base name so object keys stay URL safe.
func SanitizeFileName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	name := portfolio.Slugify(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		name = "file"
	}
	return name + ext
}

func GetProjectDirectoryPath(projectId string) string {
	return fmt.Sprintf("projects/%s", projectId)
}

func GetProjectImageDirectoryPath(projectId string) string {
	return GetProjectDirectoryPath(projectId) + "/images"
}

func GetProjectVideoDirectoryPath(projectId string) string {
	return GetProjectDirectoryPath(projectId) + "/videos"
}

func GetProjectCoverDirectoryPath(projectId string) string {
	return GetProjectDirectoryPath(projectId) + "/cover"
}
