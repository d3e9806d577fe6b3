// Package render draws Recamán circles to image files.
//
// A [Figure] maps sequence coordinates onto pixels. [RasterCanvas] strokes
// arcs into an RGBA image for PNG output, [WriteSVG] emits the same arcs as
// vector paths, and [Animator] sweeps the arcs one frame at a time into a
// [FrameEncoder] (GIF in-process, MP4 through ffmpeg).
//
// [Renderer] ties these together with the output layout used by the CLI:
//
//	plots/recaman_<N>_start_<S>.<png|svg>
//	animations/recaman_<N>_start_<S>.<mp4|gif>
package render
