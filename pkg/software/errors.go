// SPDX-License-Identifier: Apache-2.0

package software

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace    = errorx.NewNamespace("software")
	DownloadError      = ErrorsNamespace.NewType("download_error")
	ChecksumError      = ErrorsNamespace.NewType("checksum_error")
	ExtractionError    = ErrorsNamespace.NewType("extraction_error")
	FileNotFoundError  = ErrorsNamespace.NewType("file_not_found")
	InstallationError  = ErrorsNamespace.NewType("installation_error")
	BuildError         = ErrorsNamespace.NewType("build_error")
	ConfigurationError = ErrorsNamespace.NewType("configuration_error")
	PathTraversalError = ErrorsNamespace.NewType("path_traversal_error")
	FileSystemError    = ErrorsNamespace.NewType("filesystem_error")

	softwareNameProperty = errorx.RegisterPrintableProperty("software_name")
	versionProperty      = errorx.RegisterPrintableProperty("version")
	urlProperty          = errorx.RegisterPrintableProperty("url")
	filePathProperty     = errorx.RegisterPrintableProperty("file_path")
	algorithmProperty    = errorx.RegisterPrintableProperty("algorithm")
	expectedHashProperty = errorx.RegisterPrintableProperty("expected_hash")
	actualHashProperty   = errorx.RegisterPrintableProperty("actual_hash")
	statusCodeProperty   = errorx.RegisterPrintableProperty("status_code")
	commandProperty      = errorx.RegisterPrintableProperty("command")
)

const (
	downloadErrorMsg      = "failed to download from URL '%s'"
	checksumErrorMsg      = "checksum verification failed for file '%s' using algorithm '%s' [ expected = '%s', actual = '%s' ]"
	extractionErrorMsg    = "failed to extract file '%s' to '%s'"
	fileNotFoundErrorMsg  = "file not found: '%s'"
	installationErrorMsg  = "failed to install software '%s' version '%s'"
	buildErrorMsg         = "failed to build software '%s' with command '%s'"
	configurationErrorMsg = "failed to configure software '%s'"
	pathTraversalErrorMsg = "path traversal detected: entry '%s' attempts to escape extraction directory"
	filesystemErrorMsg    = "filesystem error"
)

func NewDownloadError(cause error, url string, statusCode int) *errorx.Error {
	err := DownloadError.New(downloadErrorMsg, url).
		WithProperty(urlProperty, url)

	if statusCode > 0 {
		err = err.WithProperty(statusCodeProperty, statusCode)
	}

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewChecksumError(filePath, algorithm, expectedHash, actualHash string) *errorx.Error {
	return ChecksumError.New(checksumErrorMsg, filePath, algorithm, expectedHash, actualHash).
		WithProperty(filePathProperty, filePath).
		WithProperty(algorithmProperty, algorithm).
		WithProperty(expectedHashProperty, expectedHash).
		WithProperty(actualHashProperty, actualHash)
}

func NewExtractionError(cause error, filePath, destPath string) *errorx.Error {
	err := ExtractionError.New(extractionErrorMsg, filePath, destPath).
		WithProperty(filePathProperty, filePath)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewFileNotFoundError(filePath string) *errorx.Error {
	return FileNotFoundError.New(fileNotFoundErrorMsg, filePath).
		WithProperty(filePathProperty, filePath)
}

func NewInstallationError(cause error, softwareName, version string) *errorx.Error {
	err := InstallationError.New(installationErrorMsg, softwareName, version).
		WithProperty(softwareNameProperty, softwareName).
		WithProperty(versionProperty, version)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewBuildError(cause error, softwareName, command string) *errorx.Error {
	err := BuildError.New(buildErrorMsg, softwareName, command).
		WithProperty(softwareNameProperty, softwareName).
		WithProperty(commandProperty, command)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewConfigurationError(cause error, softwareName string) *errorx.Error {
	err := ConfigurationError.New(configurationErrorMsg, softwareName).
		WithProperty(softwareNameProperty, softwareName)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewPathTraversalError(entryName string) *errorx.Error {
	return PathTraversalError.New(pathTraversalErrorMsg, entryName).
		WithProperty(filePathProperty, entryName)
}

func NewFileSystemError(cause error) *errorx.Error {
	return FileSystemError.New(filesystemErrorMsg).
		WithUnderlyingErrors(cause)
}
