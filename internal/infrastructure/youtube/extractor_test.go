package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "standard watch url",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch url without www",
			url:  "https://youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch url without scheme",
			url:  "youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short youtu.be url",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "embed url",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "v path url",
			url:  "https://www.youtube.com/v/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "nocookie domain",
			url:  "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "learnfromvideo alias",
			url:  "https://learnfromvideo.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "trailing v query on another path",
			url:  "https://www.youtube.com/live/stream?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "extra query params after id",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "unknown domain",
			url:  "https://example.com/not-a-youtube-url",
			want: "",
		},
		{
			name: "vimeo url",
			url:  "https://vimeo.com/watch?v=dQw4w9WgXcQ",
			want: "",
		},
		{
			name: "valid url not at start of string",
			url:  "check this out https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "",
		},
		{
			name: "token too short",
			url:  "https://youtu.be/short",
			want: "",
		},
		{
			name: "empty string",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVideoID(tt.url)
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
