// Package shellsetup prints the shell function that lets rpane change the
// calling shell's directory on exit.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// ParentShellFunc reports the executable name of the parent process.
type ParentShellFunc func() string

// Config customizes WriteSetup.
type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the path baked into the snippet.
	Executable string
}

const resultPrefix = "rpane_result_"

// ResultPath is the file rpane writes its final directory to. The shell
// wrapper reads it after the process exits and changes into it.
func ResultPath(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s%d.txt", resultPrefix, pid))
}

// PrintSetup writes the snippet to stdout.
func PrintSetup(shellOverride string, cfg Config) {
	_ = WriteSetup(os.Stdout, shellOverride, cfg)
}

// WriteSetup writes the shell integration snippet for shellOverride, or for
// the detected shell when it is empty.
func WriteSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	rpath := cfg.Executable
	if rpath == "" {
		exe, err := os.Executable()
		if err != nil {
			exe = "rpane"
		}
		rpath = exe
	}
	quoted := strconv.Quote(rpath)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function rpane
    if test (count $argv) -gt 0
        command %s $argv
        return $status
    end

    command %s &
    set rpane_pid $last_pid
    wait $rpane_pid

    set result_file "$TMPDIR/%s$rpane_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
end
`, quoted, quoted, resultPrefix)
	case "pwsh", "powershell":
		_, err = fmt.Fprintf(w, `function rpane {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Args)
    if ($Args.Count -gt 0) {
        & %s @Args
        return
    }

    $process = Start-Process -FilePath %s -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path $env:TEMP "%s$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue | ForEach-Object { $_.Trim() }
            if ((Test-Path $dest -PathType Container) -and -not [string]::IsNullOrEmpty($dest)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`, quoted, quoted, resultPrefix)
	case "tcsh", "csh":
		_, err = fmt.Fprintf(w, "alias rpane 'cd `%s`'\n", rpath)
	case "cmd":
		_, err = fmt.Fprintf(w, `:: Save as rpane.cmd and run "call rpane.cmd" from cmd.exe sessions.
@echo off
if "%%~1"==""
(
    for /f "delims=" %%%%d in ('%s') do (
        if not "%%%%d"=="" cd /d "%%%%d"
    )
    exit /b 0
) else (
    %s %%*
    exit /b %%errorlevel%%
)
`, quoted, quoted)
	default:
		// bash, zsh, sh, ksh and anything unknown get the POSIX function.
		_, err = fmt.Fprintf(w, `rpane() {
    if [ "$#" -gt 0 ]; then
        command %s "$@"
        return $?
    fi

    command %s &
    rpane_pid=$!
    wait $rpane_pid

    result_file="${TMPDIR:-/tmp}/%s$rpane_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    else
        rm -f "$result_file" 2>/dev/null
    fi
}
`, quoted, quoted, resultPrefix)
	}
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
