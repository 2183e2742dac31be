package utils_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyemirov/suiterun/internal/utils"
)

const (
	flushingWriterPayloadConstant             = "flushing_writer_payload"
	flushingWriterSubtestTemplateConstant     = "%d_%s"
	flushingWriterCasePlainWriterConstant     = "plain_writer_is_forwarded"
	flushingWriterCaseFlushableWriterConstant = "flushable_writer_is_flushed"
	flushingWriterCaseFlushFailureConstant    = "flush_failure_is_reported"
)

var errFlushFailure = errors.New("flush failure")

type recordingPlainWriter struct {
	writtenPayloads [][]byte
}

func (writer *recordingPlainWriter) Write(payload []byte) (int, error) {
	writer.writtenPayloads = append(writer.writtenPayloads, append([]byte(nil), payload...))
	return len(payload), nil
}

type recordingFlushWriter struct {
	recordingPlainWriter

	flushCallCount int
	flushError     error
}

func (writer *recordingFlushWriter) Flush() error {
	writer.flushCallCount++
	return writer.flushError
}

func TestFlushingWriterWrite(testInstance *testing.T) {
	testCases := []struct {
		name               string
		buildWriter        func() (io.Writer, func() int)
		expectedError      error
		expectedFlushCalls int
	}{
		{
			name: flushingWriterCasePlainWriterConstant,
			buildWriter: func() (io.Writer, func() int) {
				plainWriter := &recordingPlainWriter{}
				return plainWriter, func() int { return 0 }
			},
		},
		{
			name: flushingWriterCaseFlushableWriterConstant,
			buildWriter: func() (io.Writer, func() int) {
				flushWriter := &recordingFlushWriter{}
				return flushWriter, func() int { return flushWriter.flushCallCount }
			},
			expectedFlushCalls: 1,
		},
		{
			name: flushingWriterCaseFlushFailureConstant,
			buildWriter: func() (io.Writer, func() int) {
				flushWriter := &recordingFlushWriter{flushError: errFlushFailure}
				return flushWriter, func() int { return flushWriter.flushCallCount }
			},
			expectedError:      errFlushFailure,
			expectedFlushCalls: 1,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(flushingWriterSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			underlyingWriter, flushCallCount := testCase.buildWriter()
			flushingWriter := utils.NewFlushingWriter(underlyingWriter)

			bytesWritten, writeError := flushingWriter.Write([]byte(flushingWriterPayloadConstant))

			require.Equal(testInstance, len(flushingWriterPayloadConstant), bytesWritten)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, writeError, testCase.expectedError)
			} else {
				require.NoError(testInstance, writeError)
			}
			require.Equal(testInstance, testCase.expectedFlushCalls, flushCallCount())
		})
	}
}
