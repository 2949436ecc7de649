// Copyright 2025 The Device Compat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package requirements_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	perfclass "github.com/devicecompat/perfclass"
	"github.com/devicecompat/perfclass/requirements"
)

func TestCameraRequirementsEndToEnd(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionT)

	rear, err := requirements.AddPrimaryRearCamera(pce)
	if err != nil {
		t.Fatal("AddPrimaryRearCamera failed: ", err)
	}
	if err := rear.SetAvailable(true); err != nil {
		t.Fatal("SetAvailable failed: ", err)
	}
	if err := rear.SetResolutionPixels(12_500_000); err != nil {
		t.Fatal("SetResolutionPixels failed: ", err)
	}

	jpeg, err := requirements.AddCameraJpegLatency(pce)
	if err != nil {
		t.Fatal("AddCameraJpegLatency failed: ", err)
	}
	if err := jpeg.SetRearCameraLatency(450.0); err != nil {
		t.Fatal("SetRearCameraLatency failed: ", err)
	}
	if err := jpeg.SetFrontCameraLatency(520.0); err != nil {
		t.Fatal("SetFrontCameraLatency failed: ", err)
	}

	if err := pce.SubmitAndCheck(context.Background()); err != nil {
		t.Error("SubmitAndCheck failed: ", err)
	}
}

func TestFailureNamesOffendingMeasurement(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionT)
	launch, err := requirements.AddCameraLaunchLatency(pce)
	if err != nil {
		t.Fatal("AddCameraLaunchLatency failed: ", err)
	}
	if err := launch.SetRearCameraLatency(450.0); err != nil {
		t.Fatal("SetRearCameraLatency failed: ", err)
	}
	if err := launch.SetFrontCameraLatency(720.0); err != nil {
		t.Fatal("SetFrontCameraLatency failed: ", err)
	}
	err = pce.SubmitAndCheck(context.Background())
	if err == nil {
		t.Fatal("SubmitAndCheck unexpectedly succeeded")
	}
	if want := "front_camera_latency: required <= 600, measured 720"; !strings.Contains(err.Error(), want) {
		t.Errorf("SubmitAndCheck error %q does not contain %q", err.Error(), want)
	}
	if dontWant := "rear_camera_latency"; strings.Contains(err.Error(), dontWant) {
		t.Errorf("SubmitAndCheck error %q names passing measurement %q", err.Error(), dontWant)
	}
}

func TestCodecInitLatencyVariants(t *testing.T) {
	// Both the base and the dolby_vision instance can coexist under one
	// evaluator; their resolved identities differ.
	pce := perfclass.New(t.Name(), perfclass.VersionT)
	base, err := requirements.AddVideoCodecInitLatency(pce, "")
	if err != nil {
		t.Fatal("AddVideoCodecInitLatency failed: ", err)
	}
	dv, err := requirements.AddVideoCodecInitLatency(pce, requirements.VariantDolbyVision)
	if err != nil {
		t.Fatal("AddVideoCodecInitLatency(dolby_vision) failed: ", err)
	}
	if err := base.SetCodecInitLatencyMs(38); err != nil {
		t.Fatal("SetCodecInitLatencyMs failed: ", err)
	}
	if err := dv.SetCodecInitLatencyMs(45); err != nil {
		t.Fatal("SetCodecInitLatencyMs failed: ", err)
	}
	// 38 <= 40 for the base table, 45 <= 50 for dolby_vision.
	if err := pce.SubmitAndCheck(context.Background()); err != nil {
		t.Error("SubmitAndCheck failed: ", err)
	}
}

func TestConcurrentCodecSessions(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionT)
	cc, err := requirements.AddConcurrentCodecSessions(pce, requirements.Config1080p, "")
	if err != nil {
		t.Fatal("AddConcurrentCodecSessions failed: ", err)
	}
	if err := cc.SetConcurrentSessions(6); err != nil {
		t.Fatal("SetConcurrentSessions failed: ", err)
	}
	if err := cc.SetConcurrentFps(172.5); err != nil {
		t.Fatal("SetConcurrentFps failed: ", err)
	}
	if err := cc.SetFrameDropsPerSecond(0.2); err != nil {
		t.Fatal("SetFrameDropsPerSecond failed: ", err)
	}
	if err := pce.SubmitAndCheck(context.Background()); err != nil {
		t.Error("SubmitAndCheck failed: ", err)
	}
}

func TestConcurrentCodecRejectsUnknownConfig(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionT)
	if _, err := requirements.AddConcurrentCodecSessions(pce, "480p", ""); err == nil {
		t.Error("AddConcurrentCodecSessions(480p) unexpectedly succeeded")
	}
}

func TestDuplicateFamilyRejected(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionT)
	if _, err := requirements.AddFrameDrops(pce); err != nil {
		t.Fatal("AddFrameDrops failed: ", err)
	}
	if _, err := requirements.AddFrameDrops(pce); !errors.Is(err, perfclass.ErrDuplicateRequirement) {
		t.Errorf("second AddFrameDrops = %v; want ErrDuplicateRequirement", err)
	}
}

func TestVideoEncodingQualityConfigs(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionU)
	for _, config := range []string{requirements.ConfigB0, requirements.ConfigB3} {
		q, err := requirements.AddVideoEncodingQuality(pce, config, requirements.VariantHEVC)
		if err != nil {
			t.Fatalf("AddVideoEncodingQuality(%s) failed: %v", config, err)
		}
		if err := q.SetBdRate(-0.1); err != nil {
			t.Fatal("SetBdRate failed: ", err)
		}
	}
	if err := pce.SubmitAndCheck(context.Background()); err != nil {
		t.Error("SubmitAndCheck failed: ", err)
	}
}

func TestInformationalVerification(t *testing.T) {
	pce := perfclass.New(t.Name(), perfclass.VersionU)
	fd, err := requirements.AddFrameDrops(pce)
	if err != nil {
		t.Fatal("AddFrameDrops failed: ", err)
	}
	// 2 drops exceed the limit of 1 at U; verification reports the miss
	// without raising an error.
	if err := fd.SetFrameDropsPer30Sec(2); err != nil {
		t.Fatal("SetFrameDropsPer30Sec failed: ", err)
	}
	met, err := pce.SubmitAndVerify(context.Background())
	if err != nil {
		t.Fatal("SubmitAndVerify failed: ", err)
	}
	if met {
		t.Error("SubmitAndVerify = true; want false")
	}
}
