package structure

import (
	"reflect"
	"testing"
)

func TestCameraAssignment_FolderName(t *testing.T) {
	tests := []struct {
		in   CameraAssignment
		want string
	}{
		{CameraAssignment{Purpose: "main", Camera: "Lumix"}, "main-lumix"},
		{CameraAssignment{Purpose: "main", Camera: "DJI POCKET"}, "main-dji-pocket"},
		{CameraAssignment{Purpose: "BTS", Camera: "iPhone_15"}, "BTS-iphone-15"},
		{CameraAssignment{Purpose: "drone", Camera: "Mavic 3 (Pro)"}, "drone-mavic-3-pro"},
	}
	for _, tt := range tests {
		if got := tt.in.FolderName(); got != tt.want {
			t.Errorf("FolderName(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCameraAssignments(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []CameraAssignment
		wantErr bool
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "single",
			in:   "main:lumix",
			want: []CameraAssignment{{Purpose: "main", Camera: "lumix"}},
		},
		{
			name: "aliases and roles",
			in:   "primary:Sony A7, behind:DJI POCKET:BTS ,aerial:Mavic:Drone",
			want: []CameraAssignment{
				{Purpose: "main", Camera: "Sony A7"},
				{Purpose: "BTS", Camera: "DJI POCKET", Role: RoleBTS},
				{Purpose: "drone", Camera: "Mavic", Role: RoleDrone},
			},
		},
		{
			name: "unknown purpose kept",
			in:   "Gimbal:Canon",
			want: []CameraAssignment{{Purpose: "Gimbal", Camera: "Canon"}},
		},
		{
			name:    "missing camera",
			in:      "main",
			wantErr: true,
		},
		{
			name:    "blank camera",
			in:      "main: ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCameraAssignments(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCameraAssignments(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCameraAssignments(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
