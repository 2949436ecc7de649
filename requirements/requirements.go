// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package requirements exposes the shipped requirement families with
// strongly typed setters, hiding the generic key/value plumbing from test
// code.
//
// Each family wraps a requirement instance resolved from the default
// definition registry. The Add functions register a fresh instance with an
// evaluator and hand back the typed wrapper:
//
//	pce := perfclass.New(testName, perfclass.VersionT)
//	cam, err := requirements.AddCameraJpegLatency(pce)
//	...
//	cam.SetRearCameraLatency(ms)
//	...
//	err = pce.SubmitAndCheck(ctx)
package requirements

import (
	perfclass "github.com/devicecompat/perfclass"
	"github.com/devicecompat/perfclass/defs"
)

// Test configs of the concurrent codec session requirement.
const (
	Config720p  = "720p"
	Config1080p = "1080p"
	Config4k    = "4k"
)

// Test configs of the video encoding quality requirement, by the number of
// B-frames the encoding session uses.
const (
	ConfigB0 = "b0"
	ConfigB3 = "b3"
)

// Variants modifying required-value tables.
const (
	VariantVP9         = "vp9"
	VariantDolbyVision = "dolby_vision"
	VariantAVC         = "avc"
	VariantHEVC        = "hevc"
)

// resolve builds a requirement instance from the default registry and
// registers it with e.
func resolve(e *perfclass.Evaluator, id, config, variant string) (*perfclass.Requirement, error) {
	r, err := defs.Default().NewRequirement(id, config, variant)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddRequirement(r); err != nil {
		return nil, err
	}
	return r, nil
}

// PrimaryCamera covers the primary camera requirements 7.5/H-1-1 (rear) and
// 7.5/H-1-2 (front).
type PrimaryCamera struct {
	*perfclass.Requirement
}

// AddPrimaryRearCamera registers requirement 7.5/H-1-1 with e.
func AddPrimaryRearCamera(e *perfclass.Evaluator) (*PrimaryCamera, error) {
	r, err := resolve(e, "7.5/H-1-1", "", "")
	if err != nil {
		return nil, err
	}
	return &PrimaryCamera{r}, nil
}

// AddPrimaryFrontCamera registers requirement 7.5/H-1-2 with e.
func AddPrimaryFrontCamera(e *perfclass.Evaluator) (*PrimaryCamera, error) {
	r, err := resolve(e, "7.5/H-1-2", "", "")
	if err != nil {
		return nil, err
	}
	return &PrimaryCamera{r}, nil
}

// SetAvailable records whether the primary camera exists.
func (r *PrimaryCamera) SetAvailable(available bool) error {
	return r.SetMeasuredValue("primary_camera_available", available)
}

// SetResolutionPixels records the camera sensor resolution in pixels.
func (r *PrimaryCamera) SetResolutionPixels(pixels int64) error {
	return r.SetMeasuredValue("primary_camera_resolution", pixels)
}

// CameraLatency covers the camera latency requirements 7.5/H-1-5 (JPEG
// capture) and 7.5/H-1-6 (camera launch).
type CameraLatency struct {
	*perfclass.Requirement
}

// AddCameraJpegLatency registers requirement 7.5/H-1-5 with e.
func AddCameraJpegLatency(e *perfclass.Evaluator) (*CameraLatency, error) {
	r, err := resolve(e, "7.5/H-1-5", "", "")
	if err != nil {
		return nil, err
	}
	return &CameraLatency{r}, nil
}

// AddCameraLaunchLatency registers requirement 7.5/H-1-6 with e.
func AddCameraLaunchLatency(e *perfclass.Evaluator) (*CameraLatency, error) {
	r, err := resolve(e, "7.5/H-1-6", "", "")
	if err != nil {
		return nil, err
	}
	return &CameraLatency{r}, nil
}

// SetRearCameraLatency records the rear camera latency in milliseconds.
func (r *CameraLatency) SetRearCameraLatency(ms float64) error {
	return r.SetMeasuredValue("rear_camera_latency", ms)
}

// SetFrontCameraLatency records the front camera latency in milliseconds.
func (r *CameraLatency) SetFrontCameraLatency(ms float64) error {
	return r.SetMeasuredValue("front_camera_latency", ms)
}

// Camera240Fps covers requirement 7.5/H-1-9.
type Camera240Fps struct {
	*perfclass.Requirement
}

// AddCamera240Fps registers requirement 7.5/H-1-9 with e.
func AddCamera240Fps(e *perfclass.Evaluator) (*Camera240Fps, error) {
	r, err := resolve(e, "7.5/H-1-9", "", "")
	if err != nil {
		return nil, err
	}
	return &Camera240Fps{r}, nil
}

// SetRear240FpsSupported records whether the rear camera supports 240 fps
// capture.
func (r *Camera240Fps) SetRear240FpsSupported(supported bool) error {
	return r.SetMeasuredValue("rear_camera_240fps_supported", supported)
}

// Egl covers requirement 7.1.4.1/H-1-2.
type Egl struct {
	*perfclass.Requirement
}

// AddEglExtensions registers requirement 7.1.4.1/H-1-2 with e.
func AddEglExtensions(e *perfclass.Evaluator) (*Egl, error) {
	r, err := resolve(e, "7.1.4.1/H-1-2", "", "")
	if err != nil {
		return nil, err
	}
	return &Egl{r}, nil
}

// SetGetNativeClientBufferSupported records support for
// EGL_ANDROID_get_native_client_buffer.
func (r *Egl) SetGetNativeClientBufferSupported(supported bool) error {
	return r.SetMeasuredValue("egl_get_native_client_buffer", supported)
}

// SetFrontBufferAutoRefreshSupported records support for
// EGL_ANDROID_front_buffer_auto_refresh.
func (r *Egl) SetFrontBufferAutoRefreshSupported(supported bool) error {
	return r.SetMeasuredValue("egl_front_buffer_auto_refresh", supported)
}

// CodecInitLatency covers the codec initialization latency requirements
// 5.1/H-1-7 (video) and 5.1/H-1-8 (audio).
type CodecInitLatency struct {
	*perfclass.Requirement
}

// AddVideoCodecInitLatency registers requirement 5.1/H-1-7 with e. variant
// is VariantDolbyVision or empty.
func AddVideoCodecInitLatency(e *perfclass.Evaluator, variant string) (*CodecInitLatency, error) {
	r, err := resolve(e, "5.1/H-1-7", "", variant)
	if err != nil {
		return nil, err
	}
	return &CodecInitLatency{r}, nil
}

// AddAudioCodecInitLatency registers requirement 5.1/H-1-8 with e.
func AddAudioCodecInitLatency(e *perfclass.Evaluator) (*CodecInitLatency, error) {
	r, err := resolve(e, "5.1/H-1-8", "", "")
	if err != nil {
		return nil, err
	}
	return &CodecInitLatency{r}, nil
}

// SetCodecInitLatencyMs records the codec initialization latency in
// milliseconds.
func (r *CodecInitLatency) SetCodecInitLatencyMs(ms int64) error {
	return r.SetMeasuredValue("codec_init_latency_ms", ms)
}

// ConcurrentCodec covers requirement 5.1/H-1-1.
type ConcurrentCodec struct {
	*perfclass.Requirement
}

// AddConcurrentCodecSessions registers requirement 5.1/H-1-1 with e for the
// given test config (Config720p, Config1080p or Config4k) and variant
// (VariantVP9 or empty).
func AddConcurrentCodecSessions(e *perfclass.Evaluator, config, variant string) (*ConcurrentCodec, error) {
	r, err := resolve(e, "5.1/H-1-1", config, variant)
	if err != nil {
		return nil, err
	}
	return &ConcurrentCodec{r}, nil
}

// SetConcurrentSessions records the number of concurrently running sessions.
func (r *ConcurrentCodec) SetConcurrentSessions(sessions int64) error {
	return r.SetMeasuredValue("concurrent_sessions", sessions)
}

// SetConcurrentFps records the aggregate achieved frame rate.
func (r *ConcurrentCodec) SetConcurrentFps(fps float64) error {
	return r.SetMeasuredValue("concurrent_fps", fps)
}

// SetFrameDropsPerSecond records the frame drop rate for diagnostics.
func (r *ConcurrentCodec) SetFrameDropsPerSecond(fdps float64) error {
	return r.SetMeasuredValue("frame_drops_per_second", fdps)
}

// AudioTapToTone covers requirement 5.6/H-1-1.
type AudioTapToTone struct {
	*perfclass.Requirement
}

// AddAudioTapToToneLatency registers requirement 5.6/H-1-1 with e.
func AddAudioTapToToneLatency(e *perfclass.Evaluator) (*AudioTapToTone, error) {
	r, err := resolve(e, "5.6/H-1-1", "", "")
	if err != nil {
		return nil, err
	}
	return &AudioTapToTone{r}, nil
}

// SetNativeLatencyMs records the tap-to-tone latency over the native API.
func (r *AudioTapToTone) SetNativeLatencyMs(ms float64) error {
	return r.SetMeasuredValue("native_latency_ms", ms)
}

// SetJavaLatencyMs records the tap-to-tone latency over the managed API.
func (r *AudioTapToTone) SetJavaLatencyMs(ms float64) error {
	return r.SetMeasuredValue("java_latency_ms", ms)
}

// FrameDrop covers requirement 5.3/H-1-1.
type FrameDrop struct {
	*perfclass.Requirement
}

// AddFrameDrops registers requirement 5.3/H-1-1 with e.
func AddFrameDrops(e *perfclass.Evaluator) (*FrameDrop, error) {
	r, err := resolve(e, "5.3/H-1-1", "", "")
	if err != nil {
		return nil, err
	}
	return &FrameDrop{r}, nil
}

// SetFrameDropsPer30Sec records the number of frames dropped over the 30
// second playback window.
func (r *FrameDrop) SetFrameDropsPer30Sec(drops int64) error {
	return r.SetMeasuredValue("frame_drops_per_30sec", drops)
}

// VideoEncodingQuality covers requirement 5.1/H-1-16.
type VideoEncodingQuality struct {
	*perfclass.Requirement
}

// AddVideoEncodingQuality registers requirement 5.1/H-1-16 with e for the
// given test config (ConfigB0 or ConfigB3) and codec variant (VariantAVC or
// VariantHEVC).
func AddVideoEncodingQuality(e *perfclass.Evaluator, config, variant string) (*VideoEncodingQuality, error) {
	r, err := resolve(e, "5.1/H-1-16", config, variant)
	if err != nil {
		return nil, err
	}
	return &VideoEncodingQuality{r}, nil
}

// SetBdRate records the BD-rate of the encoded output against the reference
// encoder.
func (r *VideoEncodingQuality) SetBdRate(bdRate float64) error {
	return r.SetMeasuredValue("bd_rate", bdRate)
}
